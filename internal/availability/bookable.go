package availability

import (
	"fmt"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
)

// EffectiveWindows 返回某个日期实际生效的时间段：该日期若有例外则以例外为准，
// 否则使用对应星期的时间表（停用的日期没有时间段）。
func EffectiveWindows(s domain.WeeklySchedule, set domain.ExceptionSet, date string) ([]domain.TimeWindow, error) {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	for _, e := range set {
		if e.Date != date {
			continue
		}
		if e.Type == domain.ExceptionOff {
			return []domain.TimeWindow{}, nil
		}
		return cloneWindows(e.TimeWindows), nil
	}

	day := isoWeekday(d)
	if !s[day-1].Enabled {
		return []domain.TimeWindow{}, nil
	}
	return cloneWindows(s[day-1].TimeWindows), nil
}

// IsBookable 判断服务者在 date 当天的 clock 时刻是否可预约，时间段为左闭右开区间
func IsBookable(s domain.WeeklySchedule, set domain.ExceptionSet, date, clock string) (bool, error) {
	if _, err := parseClock(clock); err != nil {
		return false, err
	}

	windows, err := EffectiveWindows(s, set, date)
	if err != nil {
		return false, err
	}

	for _, w := range windows {
		if w.Start <= clock && clock < w.End {
			return true, nil
		}
	}
	return false, nil
}

func isoWeekday(t time.Time) int32 {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int32(t.Weekday())
}
