package domain

import (
	"bytes"
	"encoding/json"
)

type DayCode string

const (
	DayMon DayCode = "MON"
	DayTue DayCode = "TUE"
	DayWed DayCode = "WED"
	DayThu DayCode = "THU"
	DayFri DayCode = "FRI"
	DaySat DayCode = "SAT"
	DaySun DayCode = "SUN"
)

var dayCodes = [7]DayCode{DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun}

// DayCodeOf 将 ISO 星期（1-7）转换为远端 API 使用的三字母代码
func DayCodeOf(day int32) (DayCode, bool) {
	if day < 1 || day > 7 {
		return "", false
	}
	return dayCodes[day-1], true
}

func (c DayCode) Day() (int32, bool) {
	for i, code := range dayCodes {
		if code == c {
			return int32(i + 1), true
		}
	}
	return 0, false
}

type TimeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ExceptionRecord 在远端既可能是裸日期字符串，也可能是 {date, timeRanges} 对象
type ExceptionRecord struct {
	Date       string      `json:"date"`
	TimeRanges []TimeRange `json:"timeRanges"`
}

func (e *ExceptionRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Date)
	}

	var obj struct {
		Date       string      `json:"date"`
		TimeRanges []TimeRange `json:"timeRanges"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Date = obj.Date
	e.TimeRanges = obj.TimeRanges
	return nil
}

type DayRecord struct {
	DayOfWeek  DayCode           `json:"dayOfWeek"`
	TimeRanges []TimeRange       `json:"timeRanges"`
	Breaks     []TimeRange       `json:"breaks"`
	Exceptions []ExceptionRecord `json:"exceptions"`
}

type DayInput struct {
	TimeRanges []TimeRange `json:"timeRanges"`
	Breaks     []TimeRange `json:"breaks"`
}

type DayPayload struct {
	DayOfWeek DayCode `json:"dayOfWeek"`
	DayInput
}

type ExceptionInput struct {
	Date       string      `json:"date"`
	TimeRanges []TimeRange `json:"timeRanges"`
}

// WirePayload 是一次完整保存需要写回远端的全部数据
type WirePayload struct {
	Days       []DayPayload     `json:"days"`
	Exceptions []ExceptionInput `json:"exceptions"`
}
