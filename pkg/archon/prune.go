package archon

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mediaforge/archon/pkg/paths"
)

func (p *pruneItem) Execute(ctx context.Context) {
	log := p.s.log

	entries, err := os.ReadDir(p.dst)
	if err != nil {
		log.WithError(err).Errorf("Failed listing target dir for prune: %q", p.dst)
		p.s.sum.Record(KindDelete, p.dst, err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if p.keep.Has(entry.Name()) {
			continue
		}

		full := filepath.Join(p.dst, entry.Name())

		// A directory can be absent from the keep set yet still be the
		// target of a walk in flight; deleting it would race the mirror.
		if entry.IsDir() && p.s.flight.walking(full) {
			log.Debugf("Skipping prune of in-flight dir: %q", full)
			continue
		}

		if entry.IsDir() {
			size := paths.TreeSize(full)
			log.Infof("Pruning stray folder: %q", full)

			if p.s.dryRun {
				log.Warn("Dry-run enabled, skipping remove...")
			} else if err := os.RemoveAll(full); err != nil {
				log.WithError(err).Errorf("Failed pruning folder: %q", full)
				p.s.sum.Record(KindDelete, full, err)
				continue
			}

			p.s.sum.PrunedDirs.Add(1)
			p.s.sum.ReclaimedBytes.Add(size)
			continue
		}

		var size uint64
		if fi, err := entry.Info(); err == nil {
			size = uint64(fi.Size())
		}
		log.Infof("Pruning stray file: %q", full)

		if p.s.dryRun {
			log.Warn("Dry-run enabled, skipping remove...")
		} else if err := os.Remove(full); err != nil {
			log.WithError(err).Errorf("Failed pruning file: %q", full)
			p.s.sum.Record(KindDelete, full, err)
			continue
		}

		p.s.sum.PrunedFiles.Add(1)
		p.s.sum.ReclaimedBytes.Add(size)
	}
}
