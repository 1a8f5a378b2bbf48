package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/internal/money"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

const (
	// cashIdleTTL is how long an untouched counter is kept.
	cashIdleTTL = 24 * time.Hour
	// cashSweepEvery bounds how often idle counters are looked for.
	cashSweepEvery = time.Hour
)

type cashEntry struct {
	counts   models.CashCount
	lastSeen time.Time
}

// cashService keeps one in-memory counter per owner. Counts are never
// persisted; a restart starts everyone from zero. Counters idle for longer
// than cashIdleTTL are dropped.
type cashService struct {
	mu        sync.Mutex
	counts    map[string]*cashEntry
	lastSweep time.Time
	clockNow  func() time.Time
}

func NewCashService() *cashService {
	return &cashService{
		counts:   make(map[string]*cashEntry),
		clockNow: time.Now,
	}
}

func (s *cashService) Denominations() []models.Denomination {
	return models.VNDDenominations
}

func (s *cashService) Summary(ctx context.Context, owner string) dto.CashSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.countFor(owner))
}

func (s *cashService) Increment(ctx context.Context, owner string, value int64) (dto.CashSummary, error) {
	return s.update(ctx, owner, value, func(current int64) int64 {
		if current >= money.MaxCount {
			return money.MaxCount
		}
		return current + 1
	})
}

func (s *cashService) Decrement(ctx context.Context, owner string, value int64) (dto.CashSummary, error) {
	return s.update(ctx, owner, value, func(current int64) int64 {
		return max(0, current-1)
	})
}

// Set stores a typed count; see money.ParseCount for how text is read.
func (s *cashService) Set(ctx context.Context, owner string, value int64, text string) (dto.CashSummary, error) {
	return s.update(ctx, owner, value, func(int64) int64 {
		return money.ParseCount(text)
	})
}

func (s *cashService) Reset(ctx context.Context, owner string) dto.CashSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := models.NewCashCount()
	s.counts[owner] = &cashEntry{counts: counts, lastSeen: s.touch()}
	logger.FromContext(ctx).Debug("cash counter reset")
	return summarize(counts)
}

func (s *cashService) update(ctx context.Context, owner string, value int64, next func(int64) int64) (dto.CashSummary, error) {
	if _, ok := models.FindDenomination(value); !ok {
		return dto.CashSummary{}, errs.NewValidationError(fmt.Sprintf("unknown denomination: %d", value))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.countFor(owner)
	counts[value] = max(0, next(counts[value]))

	logger.FromContext(ctx).Debug("cash count updated", "denomination", value, "count", counts[value])
	return summarize(counts), nil
}

// caller holds s.mu
func (s *cashService) countFor(owner string) models.CashCount {
	now := s.touch()
	entry, ok := s.counts[owner]
	if !ok {
		entry = &cashEntry{counts: models.NewCashCount()}
		s.counts[owner] = entry
	}
	entry.lastSeen = now
	return entry.counts
}

// touch returns the current time and evicts idle counters at most once per
// cashSweepEvery. caller holds s.mu
func (s *cashService) touch() time.Time {
	now := s.clockNow()
	if now.Sub(s.lastSweep) < cashSweepEvery {
		return now
	}
	s.lastSweep = now
	for owner, entry := range s.counts {
		if now.Sub(entry.lastSeen) > cashIdleTTL {
			delete(s.counts, owner)
		}
	}
	return now
}

func summarize(counts models.CashCount) dto.CashSummary {
	rows := make([]dto.CashRow, 0, len(models.VNDDenominations))
	for _, d := range models.VNDDenominations {
		subtotal := d.Value * counts[d.Value]
		rows = append(rows, dto.CashRow{
			Value:           d.Value,
			Label:           d.Label,
			Color:           d.Color,
			Count:           counts[d.Value],
			Subtotal:        subtotal,
			SubtotalDisplay: money.Format(subtotal),
		})
	}
	total := counts.Total()
	return dto.CashSummary{
		Rows:         rows,
		Total:        total,
		TotalDisplay: money.Format(total),
	}
}
