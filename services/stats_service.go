package services

import (
	"context"
	"sync"
	"time"

	"storefront/models"
)

type StatsAPI interface {
	AdminStats(ctx context.Context, token string) (*models.AdminStats, error)
}

type StatsOptions struct {
	Interval  time.Duration
	Timeout   time.Duration
	NewTicker func(time.Duration) Ticker
}

// StatsService polls the admin dashboard counters. A poll without a token
// fails immediately and never reaches the network.
type StatsService struct {
	api     StatsAPI
	session *Session
	poller  *Poller[*models.AdminStats]

	mu       sync.Mutex
	stats    models.AdminStats
	lastErr  error
	onUpdate func(models.AdminStats, error)
}

func NewStatsService(api StatsAPI, session *Session, opts StatsOptions) *StatsService {
	s := &StatsService{api: api, session: session}
	s.poller = NewPoller(PollerOptions[*models.AdminStats]{
		Name:      "AdminStats",
		Interval:  opts.Interval,
		Timeout:   opts.Timeout,
		NewTicker: opts.NewTicker,
		Fetch:     s.fetch,
		Apply:     s.apply,
		OnError:   s.fail,
	})
	return s
}

// OnUpdate registers fn to run after every poll outcome.
func (s *StatsService) OnUpdate(fn func(models.AdminStats, error)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

func (s *StatsService) Start(ctx context.Context) error { return s.poller.Start(ctx) }

func (s *StatsService) Stop() { s.poller.Stop() }

func (s *StatsService) Refresh() bool { return s.poller.Refresh() }

func (s *StatsService) Stats() models.AdminStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *StatsService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Banner is the text shown above the dashboard, empty when the last poll succeeded.
func (s *StatsService) Banner() string {
	err := s.LastError()
	if err == nil {
		return ""
	}
	return models.UserMessage(err, "Failed to fetch admin stats")
}

func (s *StatsService) fetch(ctx context.Context) (*models.AdminStats, error) {
	token := s.session.Token()
	if token == "" {
		return nil, models.ErrAuthRequired
	}
	return s.api.AdminStats(ctx, token)
}

func (s *StatsService) apply(stats *models.AdminStats) {
	s.mu.Lock()
	if stats != nil {
		s.stats = *stats
	}
	s.lastErr = nil
	current, fn := s.stats, s.onUpdate
	s.mu.Unlock()

	if fn != nil {
		fn(current, nil)
	}
}

func (s *StatsService) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	current, fn := s.stats, s.onUpdate
	s.mu.Unlock()

	if fn != nil {
		fn(current, err)
	}
}
