package availability

import (
	"testing"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestAddException(t *testing.T) {
	set, err := AddException(domain.ExceptionSet{}, "2030-03-12", domain.ExceptionCustom,
		[]domain.TimeWindow{{Start: "10:00", End: "11:00"}}, testNow)
	require.NoError(t, err)
	require.Len(t, set, 1)

	e := set[0]
	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, "2030-03-12", e.Date)
	assert.Equal(t, domain.ExceptionCustom, e.Type)
	assert.Equal(t, []domain.TimeWindow{{Start: "10:00", End: "11:00"}}, e.TimeWindows)
}

func TestAddExceptionToday(t *testing.T) {
	// 当天虽然已经过了一部分，仍然允许添加
	set, err := AddException(nil, "2030-03-10", domain.ExceptionOff, nil, testNow)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Empty(t, set[0].TimeWindows)
}

func TestAddExceptionOffDropsWindows(t *testing.T) {
	set, err := AddException(nil, "2030-03-11", domain.ExceptionOff,
		[]domain.TimeWindow{{Start: "10:00", End: "11:00"}}, testNow)
	require.NoError(t, err)
	assert.Empty(t, set[0].TimeWindows)
}

func TestAddExceptionPastDate(t *testing.T) {
	set := domain.ExceptionSet{}
	out, err := AddException(set, "2030-03-09", domain.ExceptionOff, nil, testNow)
	require.ErrorIs(t, err, ErrPastDate)
	assert.Equal(t, set, out)
}

func TestAddExceptionDuplicateDate(t *testing.T) {
	set, err := AddException(nil, "2030-04-01", domain.ExceptionOff, nil, testNow)
	require.NoError(t, err)

	out, err := AddException(set, "2030-04-01", domain.ExceptionCustom,
		[]domain.TimeWindow{{Start: "09:00", End: "10:00"}}, testNow)
	require.ErrorIs(t, err, ErrDuplicateDate)
	assert.Equal(t, set, out)
}

func TestAddExceptionPastCheckedBeforeDuplicate(t *testing.T) {
	set := domain.ExceptionSet{{ID: "old", Date: "2030-01-01", Type: domain.ExceptionOff}}

	_, err := AddException(set, "2030-01-01", domain.ExceptionOff, nil, testNow)
	assert.ErrorIs(t, err, ErrPastDate)
	assert.NotErrorIs(t, err, ErrDuplicateDate)
}

func TestAddExceptionInvalidDate(t *testing.T) {
	_, err := AddException(nil, "2030/03/12", domain.ExceptionOff, nil, testNow)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRemoveException(t *testing.T) {
	set := domain.ExceptionSet{
		{ID: "a", Date: "2030-04-01", Type: domain.ExceptionOff},
		{ID: "b", Date: "2030-04-02", Type: domain.ExceptionOff},
	}

	out := RemoveException(set, "a")
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
	assert.Len(t, set, 2)

	// 不存在的 ID 不报错
	assert.Len(t, RemoveException(out, "missing"), 1)
}

func TestToggleExceptionType(t *testing.T) {
	draft := NewExceptionDraft()
	draft.Date = "2030-04-01"
	assert.Equal(t, domain.ExceptionOff, draft.Type)

	custom := ToggleExceptionType(draft)
	assert.Equal(t, domain.ExceptionCustom, custom.Type)
	assert.Equal(t, []domain.TimeWindow{{Start: "09:00", End: "13:00"}}, custom.TimeWindows)
	assert.Equal(t, "2030-04-01", custom.Date)

	off := ToggleExceptionType(custom)
	assert.Equal(t, domain.ExceptionOff, off.Type)
	assert.Empty(t, off.TimeWindows)
}
