package archon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mediaforge/archon/pkg/config"
)

func TestNeedsRebuild(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	older := base.Add(-time.Hour)
	newer := base.Add(time.Hour)

	tests := []struct {
		name      string
		src       time.Time
		dst       time.Time
		dstExists bool
		baseCfg   time.Time
		override  time.Time
		expect    bool
	}{
		{"TargetAbsent", base, time.Time{}, false, older, time.Time{}, true},
		{"SourceNewer", newer, base, true, older, time.Time{}, true},
		{"SourceOlder", older, base, true, older, time.Time{}, false},
		{"EqualMTimesUpToDate", base, base, true, older, time.Time{}, false},
		{"BaseConfigNewer", older, base, true, newer, time.Time{}, true},
		{"BaseConfigEqual", older, base, true, base, time.Time{}, false},
		{"OverrideNewer", older, base, true, older, newer, true},
		{"OverrideOlder", older, base, true, older, older, false},
		{"NoOverrideGoverning", older, base, true, older, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Effective{
				BaseMTime:     tt.baseCfg,
				OverrideMTime: tt.override,
			}
			assert.Equal(t, tt.expect, needsRebuild(tt.src, tt.dst, tt.dstExists, cfg))
		})
	}
}
