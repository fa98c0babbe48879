package availability

import (
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
)

// Editor 保存管理员对某个服务者可预约时间的未提交修改。
// IsSaved 为 false 表示存在尚未保存的修改。
type Editor struct {
	ProviderID     string                `json:"providerID"`
	Schedule       domain.WeeklySchedule `json:"schedule"`
	Exceptions     domain.ExceptionSet   `json:"exceptions"`
	ExceptionDraft domain.ExceptionDraft `json:"exceptionDraft"`
	IsSaved        bool                  `json:"isSaved"`
	LoadedAt       time.Time             `json:"loadedAt"`
}

func NewEditor(providerID string, s domain.WeeklySchedule, set domain.ExceptionSet, now time.Time) *Editor {
	return &Editor{
		ProviderID:     providerID,
		Schedule:       s,
		Exceptions:     set,
		ExceptionDraft: NewExceptionDraft(),
		IsSaved:        true,
		LoadedAt:       now,
	}
}

func (e *Editor) ToggleDay(day int32) error {
	if !validDay(day) {
		return ErrUnknownDay
	}
	e.Schedule = ToggleDay(e.Schedule, day)
	e.IsSaved = false
	return nil
}

func (e *Editor) AddWindow(day int32) error {
	if !validDay(day) {
		return ErrUnknownDay
	}
	e.Schedule = AddWindow(e.Schedule, day)
	e.IsSaved = false
	return nil
}

func (e *Editor) RemoveWindow(day int32, index int) error {
	if !validDay(day) {
		return ErrUnknownDay
	}
	if index < 0 || index >= len(e.Schedule[day-1].TimeWindows) {
		return ErrUnknownWindow
	}
	e.Schedule = RemoveWindow(e.Schedule, day, index)
	e.IsSaved = false
	return nil
}

func (e *Editor) SetWindowTime(day int32, index int, start, end string) error {
	s, err := SetWindowTime(e.Schedule, day, index, start, end)
	if err != nil {
		return err
	}
	e.Schedule = s
	e.IsSaved = false
	return nil
}

func (e *Editor) AddException(date string, typ domain.ExceptionType, windows []domain.TimeWindow, now time.Time) error {
	set, err := AddException(e.Exceptions, date, typ, windows, now)
	if err != nil {
		return err
	}
	e.Exceptions = set
	e.IsSaved = false
	return nil
}

func (e *Editor) RemoveException(id string) {
	e.Exceptions = RemoveException(e.Exceptions, id)
	e.IsSaved = false
}

// SetExceptionDraft 修改草稿的日期与时间段，草稿本身不影响 IsSaved
func (e *Editor) SetExceptionDraft(date string, windows []domain.TimeWindow) {
	e.ExceptionDraft.Date = date
	if e.ExceptionDraft.Type == domain.ExceptionCustom && windows != nil {
		e.ExceptionDraft.TimeWindows = cloneWindows(windows)
	}
}

func (e *Editor) ToggleExceptionType() {
	e.ExceptionDraft = ToggleExceptionType(e.ExceptionDraft)
}

// CommitExceptionDraft 将草稿加入例外集合，成功后重置草稿
func (e *Editor) CommitExceptionDraft(now time.Time) error {
	d := e.ExceptionDraft
	if err := e.AddException(d.Date, d.Type, d.TimeWindows, now); err != nil {
		return err
	}
	e.ExceptionDraft = NewExceptionDraft()
	return nil
}

// Payload 返回归一化后的待保存数据
func (e *Editor) Payload() domain.WirePayload {
	return Serialize(Normalize(e.Schedule), e.Exceptions)
}

func (e *Editor) Validate() error {
	return Validate(Normalize(e.Schedule), e.Exceptions)
}

func (e *Editor) MarkSaved() {
	e.Schedule = Normalize(e.Schedule)
	e.IsSaved = true
}
