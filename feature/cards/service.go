package cards

import (
	"context"
	"time"

	"card-sync/core/reconcile"

	"go.uber.org/zap"
)

// Service serves the card snapshot through the read cache.
type Service struct {
	cache  *reconcile.ReadCache
	logger *zap.Logger
}

// NewService creates a new cards service.
func NewService(cache *reconcile.ReadCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cache: cache, logger: logger}
}

// Cards returns the current snapshot and the time it was refreshed.
// The slice is never nil on success.
func (s *Service) Cards(ctx context.Context) ([]reconcile.Card, time.Time, error) {
	cards, err := s.cache.Get(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	if cards == nil {
		cards = []reconcile.Card{}
	}
	return cards, s.cache.LastRefresh(), nil
}
