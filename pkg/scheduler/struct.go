package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// Tier selects which worker pool runs a work item. Light is for I/O-bound
// work (walks, copies, prune sweeps) and is oversubscribed relative to the
// CPU count; Heavy is for CPU-bound conversions and sized near it.
type Tier int

const (
	Light Tier = iota
	Heavy
)

func (t Tier) String() string {
	if t == Heavy {
		return "heavy"
	}
	return "light"
}

// Item is a unit of work. Items are independent: the scheduler gives no
// ordering guarantee between them, and an executing item may submit more
// items to either tier.
type Item interface {
	Execute(ctx context.Context)
}

// Abandoner is implemented by items holding bookkeeping that must be released
// even when the scheduler drops them at cancellation instead of running them.
type Abandoner interface {
	Abandon()
}

type pool struct {
	name     string
	sem      chan struct{}
	limiter  ratelimit.Limiter
	executed atomic.Uint64
}

// Scheduler owns the light and heavy pools and the quiescence counter.
type Scheduler struct {
	light *pool
	heavy *pool

	// wg counts every submitted item until its completion. Items only
	// submit further items while running, i.e. while the counter is still
	// positive, so Wait observes a true fixpoint drain rather than a
	// momentarily empty queue.
	wg sync.WaitGroup

	log *logrus.Entry
}
