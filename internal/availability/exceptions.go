package availability

import (
	"fmt"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/google/uuid"
)

func cloneExceptions(set domain.ExceptionSet) domain.ExceptionSet {
	out := make(domain.ExceptionSet, len(set))
	for i, e := range set {
		out[i] = e
		out[i].TimeWindows = cloneWindows(e.TimeWindows)
	}
	return out
}

// AddException 为某个日期添加例外。先检查日期是否早于今天，再检查日期是否重复，
// 任一检查失败都不会修改 set。
func AddException(set domain.ExceptionSet, date string, typ domain.ExceptionType, windows []domain.TimeWindow, now time.Time) (domain.ExceptionSet, error) {
	d, err := time.ParseInLocation(domain.DateFormat, date, now.Location())
	if err != nil {
		return set, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return set, fmt.Errorf("%w: %s", ErrPastDate, date)
	}

	for _, e := range set {
		if e.Date == date {
			return set, fmt.Errorf("%w: %s", ErrDuplicateDate, date)
		}
	}

	e := domain.Exception{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        typ,
		TimeWindows: []domain.TimeWindow{},
	}
	if typ == domain.ExceptionCustom {
		e.TimeWindows = cloneWindows(windows)
	}

	return append(cloneExceptions(set), e), nil
}

func RemoveException(set domain.ExceptionSet, id string) domain.ExceptionSet {
	out := make(domain.ExceptionSet, 0, len(set))
	for _, e := range set {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func NewExceptionDraft() domain.ExceptionDraft {
	return domain.ExceptionDraft{
		Type:        domain.ExceptionOff,
		TimeWindows: []domain.TimeWindow{},
	}
}

// ToggleExceptionType 在 off 与 custom 之间切换。切换到 custom 时填入 09:00-13:00，
// 切换到 off 时清空时间段。
func ToggleExceptionType(draft domain.ExceptionDraft) domain.ExceptionDraft {
	out := draft
	switch draft.Type {
	case domain.ExceptionCustom:
		out.Type = domain.ExceptionOff
		out.TimeWindows = []domain.TimeWindow{}
	default:
		out.Type = domain.ExceptionCustom
		out.TimeWindows = []domain.TimeWindow{DefaultExceptionWindow}
	}
	return out
}
