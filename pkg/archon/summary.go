package archon

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Summary aggregates counters and failures across all work items of a run.
type Summary struct {
	WalkedDirs     atomic.Uint64
	CopiedFiles    atomic.Uint64
	ConvertedFiles atomic.Uint64
	PrunedFiles    atomic.Uint64
	PrunedDirs     atomic.Uint64
	UpToDate       atomic.Uint64
	Ignored        atomic.Uint64

	CopiedBytes    atomic.Uint64
	ReclaimedBytes atomic.Uint64

	mu       sync.Mutex
	failures []Failure
}

func newSummary() *Summary {
	return &Summary{}
}

// Record adds a non-fatal item failure.
func (s *Summary) Record(kind Kind, path string, err error) {
	s.mu.Lock()
	s.failures = append(s.failures, Failure{Kind: kind, Path: path, Err: err})
	s.mu.Unlock()
}

// Failures returns a copy of all recorded failures.
func (s *Summary) Failures() []Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Failure(nil), s.failures...)
}

// FailureCount returns how many items failed.
func (s *Summary) FailureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.failures)
}

// CountByKind returns how many failures of the given kind were recorded.
func (s *Summary) CountByKind(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.failures {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// LogResults prints the run outcome in the usual end-of-command format.
func (s *Summary) LogResults(log *logrus.Entry, elapsed time.Duration, dryRun bool) {
	log.Info("-----")
	if dryRun {
		log.Warn("Dry-run enabled, nothing was written or removed")
	}

	log.WithField("copied_bytes", humanize.IBytes(s.CopiedBytes.Load())).
		Infof("Walked %d dirs: %d copied, %d converted, %d already up to date, %d ignored",
			s.WalkedDirs.Load(), s.CopiedFiles.Load(), s.ConvertedFiles.Load(),
			s.UpToDate.Load(), s.Ignored.Load())

	log.WithField("reclaimed_space", humanize.IBytes(s.ReclaimedBytes.Load())).
		Infof("Pruned %d files and %d folders from target", s.PrunedFiles.Load(), s.PrunedDirs.Load())

	failures := s.Failures()
	if len(failures) == 0 {
		log.Infof("Completed in %s with no failures", elapsed.Truncate(time.Millisecond))
		return
	}

	log.Errorf("Completed in %s with %d failures (config: %d, walk: %d, copy: %d, convert: %d, delete: %d)",
		elapsed.Truncate(time.Millisecond), len(failures),
		s.CountByKind(KindConfig), s.CountByKind(KindWalk), s.CountByKind(KindCopy),
		s.CountByKind(KindConvert), s.CountByKind(KindDelete))

	for _, f := range failures {
		log.WithError(f.Err).Errorf("%s failed: %q", f.Kind, f.Path)
	}
}
