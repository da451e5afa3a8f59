package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StaffSessionStore keeps the shared-passcode unlock sessions in Redis.
// There are no per-user identities behind the gate, just "this kiosk
// browser proved it knows the staff passcode recently".
type StaffSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStaffSessionStore(rdb *redis.Client, ttl time.Duration) *StaffSessionStore {
	return &StaffSessionStore{rdb: rdb, ttl: ttl}
}

type StaffSession struct {
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

func key(id string) string { return fmt.Sprintf("staff:sess:%s", id) }

func (s *StaffSessionStore) Create(ctx context.Context, id string) error {
	now := time.Now()
	b, _ := json.Marshal(StaffSession{
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	return s.rdb.Set(ctx, key(id), b, s.ttl).Err()
}

func (s *StaffSessionStore) Get(ctx context.Context, id string) (*StaffSession, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var ss StaffSession
	if err := json.Unmarshal(b, &ss); err != nil {
		return nil, err
	}
	return &ss, nil
}

func (s *StaffSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}
