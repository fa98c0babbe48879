package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/chatbooking/admin/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

const ExceptionsPart = "exceptions"

var partOrder = []string{
	string(domain.DayMon), string(domain.DayTue), string(domain.DayWed), string(domain.DayThu),
	string(domain.DayFri), string(domain.DaySat), string(domain.DaySun), ExceptionsPart,
}

// Writer 是远端 API 中保存可预约时间所需的两个写操作
type Writer interface {
	UpdateDayAvailability(ctx context.Context, providerID string, day domain.DayCode, input domain.DayInput) error
	UpdateExceptions(ctx context.Context, providerID string, exceptions []domain.ExceptionInput) error
}

type SaveResult struct {
	Status    domain.SaveStatus `json:"status"`
	Succeeded []string          `json:"succeeded"`
	Failed    []string          `json:"failed"`
}

type Saver struct {
	writer Writer
}

func NewSaver(w Writer) *Saver {
	return &Saver{writer: w}
}

// Save 并发地发出 7 个按天的写请求和 1 个例外写请求并等待全部完成。
// 各请求之间没有顺序保证，也不会因为其中一个失败而取消其他请求，
// 因此远端可能只更新了一部分，这种情况通过 SaveResult.Status = partial 以及
// *RemoteWriteError 告知调用方。
func (s *Saver) Save(ctx context.Context, providerID string, payload domain.WirePayload) (*SaveResult, error) {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	result := &SaveResult{
		Succeeded: []string{},
		Failed:    []string{},
	}

	record := func(part string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failed = append(result.Failed, part)
			errs = append(errs, fmt.Errorf("%s: %w", part, err))
			slog.Error("写入可预约时间失败", "provider", providerID, "part", part, "error", err)
			return
		}
		result.Succeeded = append(result.Succeeded, part)
	}

	for _, day := range payload.Days {
		day := day // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			err := s.writer.UpdateDayAvailability(ctx, providerID, day.DayOfWeek, day.DayInput)
			record(string(day.DayOfWeek), err)
			return err
		})
	}
	g.Go(func() error {
		err := s.writer.UpdateExceptions(ctx, providerID, payload.Exceptions)
		record(ExceptionsPart, err)
		return err
	})

	_ = g.Wait()

	sortParts(result.Succeeded)
	sortParts(result.Failed)

	switch {
	case len(result.Failed) == 0:
		result.Status = domain.SaveSucceeded
		return result, nil
	case len(result.Succeeded) == 0:
		result.Status = domain.SaveFailed
	default:
		result.Status = domain.SavePartial
	}

	return result, &RemoteWriteError{
		ProviderID: providerID,
		Parts:      slices.Clone(result.Failed),
		Err:        errors.Join(errs...),
	}
}

func sortParts(parts []string) {
	slices.SortFunc(parts, func(a, b string) int {
		return slices.Index(partOrder, a) - slices.Index(partOrder, b)
	})
}
