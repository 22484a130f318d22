package archon

import (
	"time"

	"github.com/mediaforge/archon/pkg/config"
)

// needsRebuild decides whether a target artifact must be (re)generated. The
// target is stale when it is absent, older than its source, older than the
// base config, or older than the nearest governing override file. Equal
// timestamps count as up to date.
func needsRebuild(srcMTime time.Time, dstMTime time.Time, dstExists bool, cfg *config.Effective) bool {
	if !dstExists {
		return true
	}
	if srcMTime.After(dstMTime) {
		return true
	}
	if cfg.BaseMTime.After(dstMTime) {
		return true
	}
	if !cfg.OverrideMTime.IsZero() && cfg.OverrideMTime.After(dstMTime) {
		return true
	}
	return false
}
