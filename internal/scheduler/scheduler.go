package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Pruner drops state untouched since the given time and reports how much.
type Pruner interface {
	Prune(before time.Time) int
}

// Scheduler periodically prunes idle in-memory sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruners   map[string]Pruner
	idleTTL   time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a scheduler pruning every pruner of state idle for longer
// than idleTTL.
func New(pruners map[string]Pruner, idleTTL time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pruners:   pruners,
		idleTTL:   idleTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs the pruning every interval without blocking.
func (s *Scheduler) Start(interval time.Duration) error {
	if _, err := s.scheduler.Every(interval).Do(s.PruneIdle); err != nil {
		return fmt.Errorf("schedule pruning: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// PruneIdle runs every pruner once and returns the total number of dropped items.
func (s *Scheduler) PruneIdle() int {
	before := s.now().Add(-s.idleTTL)

	total := 0
	for name, p := range s.pruners {
		n := p.Prune(before)
		if n > 0 {
			s.logger.Info("pruned idle sessions", zap.String("store", name), zap.Int("count", n))
		}
		total += n
	}

	return total
}
