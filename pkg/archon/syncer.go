package archon

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/logger"
	"github.com/mediaforge/archon/pkg/scheduler"
)

// New builds a Syncer from a validated configuration. Host parallelism is
// detected once here and frozen for the run.
func New(c *config.Configuration, opts Options) (*Syncer, error) {
	base, err := config.NewEffective(c, opts.ConfigMTime)
	if err != nil {
		return nil, errors.Wrap(err, "resolve base config")
	}

	cpus := runtime.NumCPU()
	lightWorkers := opts.LightWorkers
	if lightWorkers == 0 {
		lightWorkers = c.LightWorkers(cpus)
	}
	heavyWorkers := opts.HeavyWorkers
	if heavyWorkers == 0 {
		heavyWorkers = c.HeavyWorkers(cpus)
	}

	s := &Syncer{
		src:    c.Source,
		dst:    c.Target,
		base:   base,
		sched:  scheduler.New(lightWorkers, heavyWorkers, scheduler.NewLimiter(c.Converter.RateLimit)),
		flight: newInflightTracker(),
		sum:    newSummary(),
		log:    logger.GetLogger("sync"),
		dryRun: opts.DryRun,
	}

	s.log.Debugf("Pools sized for %d CPUs: light=%d heavy=%d", cpus, lightWorkers, heavyWorkers)
	return s, nil
}

// Scheduler exposes the run's scheduler, mainly for pool size inspection.
func (s *Syncer) Scheduler() *scheduler.Scheduler {
	return s.sched
}

// Run walks the source tree to quiescence and returns the aggregated
// summary. The returned error covers setup problems only; per-item failures
// land in the summary.
func (s *Syncer) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	s.log.Infof("Syncing %q -> %q", s.src, s.dst)

	token := s.flight.begin(s.dst, nil)
	s.sched.Submit(ctx, scheduler.Light, &walkItem{
		s:     s,
		src:   s.src,
		dst:   s.dst,
		cfg:   s.base,
		token: token,
	})

	s.sched.Quiesce()

	if err := ctx.Err(); err != nil {
		s.log.Warn("Run interrupted, in-flight items were drained")
	}

	s.sum.LogResults(s.log, time.Since(start), s.dryRun)
	return s.sum, nil
}
