package availability

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/google/uuid"
)

func toRanges(ws []domain.TimeWindow) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, len(ws))
	for _, w := range ws {
		out = append(out, domain.TimeRange{StartTime: w.Start, EndTime: w.End})
	}
	return out
}

func toWindows(rs []domain.TimeRange) []domain.TimeWindow {
	out := make([]domain.TimeWindow, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.TimeWindow{Start: r.StartTime, End: r.EndTime})
	}
	return out
}

// Serialize 将内存中的模型转换为远端 API 需要的格式。停用的日期总是发送空列表。
func Serialize(s domain.WeeklySchedule, set domain.ExceptionSet) domain.WirePayload {
	payload := domain.WirePayload{
		Days:       make([]domain.DayPayload, 0, len(s)),
		Exceptions: make([]domain.ExceptionInput, 0, len(set)),
	}

	for i, d := range s {
		code, _ := domain.DayCodeOf(int32(i + 1))
		ranges := []domain.TimeRange{}
		if d.Enabled {
			ranges = toRanges(d.TimeWindows)
		}
		payload.Days = append(payload.Days, domain.DayPayload{
			DayOfWeek: code,
			DayInput: domain.DayInput{
				TimeRanges: ranges,
				Breaks:     []domain.TimeRange{},
			},
		})
	}

	for _, e := range set {
		ranges := []domain.TimeRange{}
		if e.Type == domain.ExceptionCustom {
			ranges = toRanges(e.TimeWindows)
		}
		payload.Exceptions = append(payload.Exceptions, domain.ExceptionInput{
			Date:       e.Date,
			TimeRanges: ranges,
		})
	}

	return payload
}

// Deserialize 将远端按天返回的记录还原为每周时间表和例外集合。
// 例外在每一天的记录中都会重复出现，这里按日期去重，保留第一次出现的那条。
// 无法识别的记录会被跳过并记录日志。
func Deserialize(records []domain.DayRecord) (domain.WeeklySchedule, domain.ExceptionSet) {
	s := DefaultSchedule()
	set := domain.ExceptionSet{}
	seen := make(map[string]bool)

	for i, rec := range records {
		day, ok := rec.DayOfWeek.Day()
		if !ok {
			logMalformed(&MalformedRecordError{Index: i, Reason: "unknown day code " + string(rec.DayOfWeek)})
			continue
		}

		windows := toWindows(rec.TimeRanges)
		s[day-1] = domain.DaySchedule{
			DayOfWeek:   day,
			Enabled:     len(windows) > 0,
			TimeWindows: windows,
		}

		for _, er := range rec.Exceptions {
			if _, err := time.Parse(domain.DateFormat, er.Date); err != nil {
				logMalformed(&MalformedRecordError{Index: i, Reason: "bad exception date " + er.Date})
				continue
			}
			if seen[er.Date] {
				continue
			}
			seen[er.Date] = true

			e := domain.Exception{
				ID:          uuid.NewString(),
				Date:        er.Date,
				Type:        domain.ExceptionOff,
				TimeWindows: []domain.TimeWindow{},
			}
			if len(er.TimeRanges) > 0 {
				e.Type = domain.ExceptionCustom
				e.TimeWindows = toWindows(er.TimeRanges)
			}
			set = append(set, e)
		}
	}

	return s, set
}

// DeserializeRaw 逐条解码远端返回的原始 JSON，无法解码的记录同样会被跳过
func DeserializeRaw(raw []json.RawMessage) (domain.WeeklySchedule, domain.ExceptionSet) {
	records := make([]domain.DayRecord, 0, len(raw))
	for i, msg := range raw {
		var rec domain.DayRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			logMalformed(&MalformedRecordError{Index: i, Reason: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	return Deserialize(records)
}

func logMalformed(err *MalformedRecordError) {
	slog.Warn("跳过无法解析的可预约时间记录", "error", err)
}
