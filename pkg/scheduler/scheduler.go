package scheduler

import (
	"context"

	"go.uber.org/ratelimit"

	"github.com/mediaforge/archon/pkg/logger"
)

// New creates a scheduler with fixed pool sizes. heavyLimiter may be nil; if
// set, heavy item starts are throttled through it (conversion launches per
// second).
func New(lightWorkers int, heavyWorkers int, heavyLimiter ratelimit.Limiter) *Scheduler {
	s := &Scheduler{
		light: &pool{
			name: "light",
			sem:  make(chan struct{}, lightWorkers),
		},
		heavy: &pool{
			name:    "heavy",
			sem:     make(chan struct{}, heavyWorkers),
			limiter: heavyLimiter,
		},
		log: logger.GetLogger("scheduler"),
	}

	s.log.Debugf("Light pool created, size: %d", lightWorkers)
	s.log.Debugf("Heavy pool created, size: %d", heavyWorkers)
	return s
}

// Submit queues an item on the given tier. It never blocks the caller on a
// full pool; execution itself is bounded by the pool's worker count. When
// ctx is cancelled before the item gets a worker, the item is dropped.
func (s *Scheduler) Submit(ctx context.Context, tier Tier, item Item) {
	p := s.pool(tier)
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			abandon(item)
			return
		}
		defer func() { <-p.sem }()

		if ctx.Err() != nil {
			abandon(item)
			return
		}

		if p.limiter != nil {
			p.limiter.Take()
		}

		p.executed.Add(1)
		item.Execute(ctx)
	}()
}

func abandon(item Item) {
	if a, ok := item.(Abandoner); ok {
		a.Abandon()
	}
}

// Quiesce blocks until no item is queued or executing in either pool and no
// completed item has left pending submissions behind.
func (s *Scheduler) Quiesce() {
	s.wg.Wait()
}

// Workers returns the fixed worker count of a tier's pool.
func (s *Scheduler) Workers(tier Tier) int {
	return cap(s.pool(tier).sem)
}

// Executed returns how many items a tier has run to completion or started.
func (s *Scheduler) Executed(tier Tier) uint64 {
	return s.pool(tier).executed.Load()
}

func (s *Scheduler) pool(tier Tier) *pool {
	if tier == Heavy {
		return s.heavy
	}
	return s.light
}

// NewLimiter builds a per-second rate limiter, or nil for zero.
func NewLimiter(perSecond int) ratelimit.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return ratelimit.New(perSecond)
}
