// Package availability 实现服务者每周可预约时间与例外日期的数据模型及其编辑规则。
//
// 包内的函数都不会修改入参，而是返回修改后的副本。
package availability

import (
	"fmt"
	"slices"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
)

var (
	DefaultDayWindow       = domain.TimeWindow{Start: "09:00", End: "17:00"}
	DefaultExtraWindow     = domain.TimeWindow{Start: "18:00", End: "20:00"}
	DefaultExceptionWindow = domain.TimeWindow{Start: "09:00", End: "13:00"}
)

func DefaultSchedule() domain.WeeklySchedule {
	var s domain.WeeklySchedule
	for i := range s {
		s[i] = domain.DaySchedule{
			DayOfWeek:   int32(i + 1),
			Enabled:     false,
			TimeWindows: []domain.TimeWindow{},
		}
	}
	return s
}

func validDay(day int32) bool {
	return day >= 1 && day <= 7
}

func cloneSchedule(s domain.WeeklySchedule) domain.WeeklySchedule {
	out := s
	for i := range out {
		out[i].TimeWindows = cloneWindows(s[i].TimeWindows)
	}
	return out
}

func cloneWindows(ws []domain.TimeWindow) []domain.TimeWindow {
	out := make([]domain.TimeWindow, len(ws))
	copy(out, ws)
	return out
}

// ToggleDay 切换某一天是否接受预约。启用一个没有时间段的日期时会补上 09:00-17:00，
// 停用时保留原有时间段，但序列化时会被视为空。
func ToggleDay(s domain.WeeklySchedule, day int32) domain.WeeklySchedule {
	if !validDay(day) {
		return s
	}

	out := cloneSchedule(s)
	d := &out[day-1]
	d.DayOfWeek = day
	d.Enabled = !d.Enabled
	if d.Enabled && len(d.TimeWindows) == 0 {
		d.TimeWindows = append(d.TimeWindows, DefaultDayWindow)
	}
	return out
}

// AddWindow 追加一个固定的 18:00-20:00 时间段，不做任何冲突检查
func AddWindow(s domain.WeeklySchedule, day int32) domain.WeeklySchedule {
	if !validDay(day) {
		return s
	}

	out := cloneSchedule(s)
	out[day-1].TimeWindows = append(out[day-1].TimeWindows, DefaultExtraWindow)
	return out
}

// RemoveWindow 按位置删除时间段。删除最后一个时间段也是允许的，
// 启用但没有时间段的日期会在 Normalize 中被视为停用。
func RemoveWindow(s domain.WeeklySchedule, day int32, index int) domain.WeeklySchedule {
	if !validDay(day) || index < 0 || index >= len(s[day-1].TimeWindows) {
		return s
	}

	out := cloneSchedule(s)
	out[day-1].TimeWindows = slices.Delete(out[day-1].TimeWindows, index, index+1)
	return out
}

// SetWindowTime 修改某个时间段的起止时间，并检查格式、先后顺序以及与同一天其他时间段的重叠
func SetWindowTime(s domain.WeeklySchedule, day int32, index int, start, end string) (domain.WeeklySchedule, error) {
	if !validDay(day) {
		return s, ErrUnknownDay
	}
	if index < 0 || index >= len(s[day-1].TimeWindows) {
		return s, ErrUnknownWindow
	}

	w := domain.TimeWindow{Start: start, End: end}
	if err := validateWindow(w); err != nil {
		return s, err
	}
	for i, other := range s[day-1].TimeWindows {
		if i != index && overlaps(w, other) {
			return s, fmt.Errorf("%w: %s-%s 与 %s-%s", ErrWindowOverlap, w.Start, w.End, other.Start, other.End)
		}
	}

	out := cloneSchedule(s)
	out[day-1].TimeWindows[index] = w
	return out, nil
}

// Normalize 将启用但没有任何时间段的日期改为停用
func Normalize(s domain.WeeklySchedule) domain.WeeklySchedule {
	out := cloneSchedule(s)
	for i := range out {
		out[i].DayOfWeek = int32(i + 1)
		if out[i].Enabled && len(out[i].TimeWindows) == 0 {
			out[i].Enabled = false
		}
	}
	return out
}

func parseClock(v string) (time.Time, error) {
	// 要求补零的 HH:MM，这样字符串比较与时间比较一致
	if len(v) != 5 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}
	t, err := time.Parse(domain.TimeFormat, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}
	return t, nil
}

func validateWindow(w domain.TimeWindow) error {
	if _, err := parseClock(w.Start); err != nil {
		return err
	}
	if _, err := parseClock(w.End); err != nil {
		return err
	}
	if w.Start >= w.End {
		return fmt.Errorf("%w: %s-%s", ErrWindowOrder, w.Start, w.End)
	}
	return nil
}

// 首尾相接（例如 09:00-12:00 与 12:00-13:00）不算重叠
func overlaps(a, b domain.TimeWindow) bool {
	return a.Start < b.End && b.Start < a.End
}

func validateWindows(ws []domain.TimeWindow) error {
	for _, w := range ws {
		if err := validateWindow(w); err != nil {
			return err
		}
	}
	for i := 0; i < len(ws); i++ {
		for j := i + 1; j < len(ws); j++ {
			if overlaps(ws[i], ws[j]) {
				return fmt.Errorf("%w: %s-%s 与 %s-%s", ErrWindowOverlap, ws[i].Start, ws[i].End, ws[j].Start, ws[j].End)
			}
		}
	}
	return nil
}

// Validate 在保存之前检查每个启用日期以及每个自定义例外的时间段
func Validate(s domain.WeeklySchedule, set domain.ExceptionSet) error {
	for _, d := range s {
		if !d.Enabled {
			continue
		}
		if err := validateWindows(d.TimeWindows); err != nil {
			code, _ := domain.DayCodeOf(d.DayOfWeek)
			return fmt.Errorf("%s: %w", code, err)
		}
	}

	for _, e := range set {
		if e.Type != domain.ExceptionCustom {
			continue
		}
		if len(e.TimeWindows) == 0 {
			return fmt.Errorf("%s: %w", e.Date, ErrEmptyCustom)
		}
		if err := validateWindows(e.TimeWindows); err != nil {
			return fmt.Errorf("%s: %w", e.Date, err)
		}
	}

	return nil
}
