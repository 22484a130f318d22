package archon

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mediaforge/archon/pkg/config"
)

// resolveOverride runs the config cascade for one directory: if the listing
// contains the configured override filename, the override is loaded and
// folded into the parent's resolved config. Without an override the parent
// config is shared as-is (it is never mutated in place).
//
// found is true whenever an override file is present, even if loading it
// failed; the caller applies the on_override_error policy in that case.
func resolveOverride(parent *config.Effective, dir string, entries []os.DirEntry) (cfg *config.Effective, found bool, err error) {
	var info os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() != parent.OverrideFilename {
			continue
		}

		fi, infoErr := entry.Info()
		if infoErr != nil {
			return parent, true, errors.Wrap(infoErr, "stat override")
		}
		info = fi
		break
	}

	if info == nil {
		return parent, false, nil
	}

	path := filepath.Join(dir, info.Name())
	override, err := config.LoadOverride(path)
	if err != nil {
		return parent, true, err
	}

	merged, err := parent.Merge(override, info.ModTime())
	if err != nil {
		return parent, true, err
	}

	return merged, true, nil
}
