package archon

import (
	"time"

	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/scheduler"
)

// Syncer mirrors a source tree into a target tree: copying, converting and
// pruning per the resolved configuration cascade.
type Syncer struct {
	src    string
	dst    string
	base   *config.Effective
	sched  *scheduler.Scheduler
	flight *inflightTracker
	sum    *Summary
	log    *logrus.Entry
	dryRun bool
}

// Options tunes a Syncer beyond the configuration record.
type Options struct {
	DryRun bool

	// ConfigMTime is the base config file's modification time, feeding the
	// staleness decision. Zero means "config age unknown" and only source
	// timestamps invalidate targets.
	ConfigMTime time.Time

	// Worker counts; zero means size from the configuration and the
	// detected host parallelism.
	LightWorkers int
	HeavyWorkers int
}

// walkItem explores one source directory: resolves the config cascade,
// classifies children, fans out work and schedules the directory's prune
// sweep. Light tier.
type walkItem struct {
	s     *Syncer
	src   string
	dst   string
	cfg   *config.Effective
	token *walkToken
}

// copyItem duplicates one file, preserving its mtime. Light tier.
type copyItem struct {
	s        *Syncer
	src      string
	dst      string
	srcMTime time.Time
}

// convertItem runs the external converter for one file. Heavy tier.
type convertItem struct {
	s   *Syncer
	src string
	dst string
	cfg *config.Effective
}

// pruneItem removes target entries with no surviving source counterpart.
// keep holds the target names expected to remain. Light tier.
type pruneItem struct {
	s    *Syncer
	dst  string
	keep *strset.Set
}
