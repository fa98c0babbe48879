// Package drafts 在 redis 中暂存管理员尚未保存的可预约时间修改。
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/redis/go-redis/v9"
)

var ErrDraftNotFound = errors.New("draft not found")

type Store struct {
	rdb        *redis.Client
	expiration time.Duration
	timeout    time.Duration
}

func NewStore(rdb *redis.Client, expiration, timeout time.Duration) *Store {
	return &Store{
		rdb:        rdb,
		expiration: expiration,
		timeout:    timeout,
	}
}

func key(subject, providerID string) string {
	return fmt.Sprintf("availability_draft_%s_%s", subject, providerID)
}

func (s *Store) Load(ctx context.Context, subject, providerID string) (*availability.Editor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.rdb.Get(ctx, key(subject, providerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	editor := &availability.Editor{}
	if err := json.Unmarshal(data, editor); err != nil {
		return nil, err
	}
	return editor, nil
}

// Save 写入草稿并刷新过期时间，过期后未保存的修改即丢失
func (s *Store) Save(ctx context.Context, subject string, editor *availability.Editor) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := json.Marshal(editor)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(subject, editor.ProviderID), data, s.expiration).Err()
}

func (s *Store) Delete(ctx context.Context, subject, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.rdb.Del(ctx, key(subject, providerID)).Err()
}
