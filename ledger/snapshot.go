package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"Gin_boardgame_lending_tool/models"
)

// Snapshot is a display-only cache of the active-loan list, refreshed on a
// schedule so the kiosk still shows something when the ledger is flaky.
// The reconciliation engine never reads it: returns always fetch fresh.
type Snapshot struct {
	mu        sync.RWMutex
	client    *Client
	log       *zap.Logger
	loans     []models.LoanRecord
	fetchedAt time.Time
}

func NewSnapshot(c *Client, log *zap.Logger) *Snapshot {
	return &Snapshot{client: c, log: log}
}

func (s *Snapshot) Refresh(ctx context.Context) error {
	loans, err := s.client.FetchActiveLoans(ctx)
	if err != nil {
		s.log.Warn("loan snapshot refresh failed", zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.loans = loans
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Cached returns the last good list and when it was fetched. The zero time
// means no refresh has succeeded yet.
func (s *Snapshot) Cached() ([]models.LoanRecord, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LoanRecord, len(s.loans))
	copy(out, s.loans)
	return out, s.fetchedAt
}
