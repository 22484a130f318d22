package archon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scylladb/go-set/strset"

	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/expression"
	"github.com/mediaforge/archon/pkg/regex"
	"github.com/mediaforge/archon/pkg/scheduler"
)

// Abandon releases the walk's in-flight token when the scheduler drops the
// item at cancellation; otherwise the destination would stay marked walking
// forever.
func (w *walkItem) Abandon() {
	w.s.flight.finish(w.token)
}

func (w *walkItem) Execute(ctx context.Context) {
	defer w.s.flight.finish(w.token)

	log := w.s.log
	log.Debugf("Walking %q", w.src)

	if err := ensureDir(w.dst); err != nil {
		log.WithError(err).Errorf("Failed preparing target dir: %q", w.dst)
		w.s.sum.Record(KindWalk, w.src, err)
		return
	}

	entries, err := os.ReadDir(w.src)
	if err != nil {
		// Subtree is skipped, siblings are unaffected.
		log.WithError(err).Errorf("Failed listing source dir: %q", w.src)
		w.s.sum.Record(KindWalk, w.src, err)
		return
	}
	w.s.sum.WalkedDirs.Add(1)

	cfg, overrideFound, err := resolveOverride(w.cfg, w.src, entries)
	if err != nil {
		overridePath := filepath.Join(w.src, w.cfg.OverrideFilename)
		log.WithError(err).Errorf("Failed loading override: %q", overridePath)
		w.s.sum.Record(KindConfig, overridePath, err)

		if w.cfg.OnOverrideError == config.OnOverrideErrorSkipSubtree {
			log.Warnf("Skipping subtree due to override error: %q", w.src)
			return
		}

		log.Warnf("Conversions disabled for subtree due to override error: %q", w.src)
		cfg = w.cfg.WithoutConversions()
	}

	// keep collects the target names with a surviving source counterpart;
	// everything else in the target dir is subject to the prune sweep.
	// Building it from the same listing that drives the copy/convert
	// decisions is what keeps pruning from racing those actions.
	keep := strset.New()

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		name := entry.Name()
		if overrideFound && name == cfg.OverrideFilename {
			// Consumed by the cascade; it has no mirror counterpart.
			continue
		}

		ignored, err := w.entryIgnored(cfg, entry)
		if err != nil {
			log.WithError(err).Warnf("Ignore expression failed for %q, processing entry", name)
		}
		if ignored {
			log.Tracef("Ignoring %q", filepath.Join(w.src, name))
			w.s.sum.Ignored.Add(1)
			continue
		}

		srcPath := filepath.Join(w.src, name)

		if entry.IsDir() {
			keep.Add(name)
			childDst := filepath.Join(w.dst, name)
			token := w.s.flight.begin(childDst, w.token)
			w.s.sched.Submit(ctx, scheduler.Light, &walkItem{
				s:     w.s,
				src:   srcPath,
				dst:   childDst,
				cfg:   cfg,
				token: token,
			})
			continue
		}

		if !entry.Type().IsRegular() {
			// Sockets, devices, dangling symlinks: inert. Never created,
			// never deleted.
			keep.Add(name)
			continue
		}

		ext := filepath.Ext(name)
		switch {
		case cfg.CopyExts.Has(ext):
			keep.Add(name)
			info, err := entry.Info()
			if err != nil {
				w.s.sum.Record(KindWalk, srcPath, err)
				continue
			}

			dstPath := filepath.Join(w.dst, name)
			if !w.stale(info.ModTime(), dstPath, cfg) {
				w.s.sum.UpToDate.Add(1)
				continue
			}
			w.s.sched.Submit(ctx, scheduler.Light, &copyItem{
				s:        w.s,
				src:      srcPath,
				dst:      dstPath,
				srcMTime: info.ModTime(),
			})

		case cfg.ConvertExts.Has(ext):
			outName := strings.TrimSuffix(name, ext) + cfg.OutputExt
			keep.Add(outName)
			info, err := entry.Info()
			if err != nil {
				w.s.sum.Record(KindWalk, srcPath, err)
				continue
			}

			dstPath := filepath.Join(w.dst, outName)
			if !w.stale(info.ModTime(), dstPath, cfg) {
				w.s.sum.UpToDate.Add(1)
				continue
			}
			w.s.sched.Submit(ctx, scheduler.Heavy, &convertItem{
				s:   w.s,
				src: srcPath,
				dst: dstPath,
				cfg: cfg,
			})

		default:
			// Inert: neither copied nor converted, but its name shields a
			// same-named target entry from pruning.
			keep.Add(name)
		}
	}

	// The sweep only needs this directory's enumeration, not the subtree's
	// completion; in-flight child walks are protected by the tracker.
	w.s.sched.Submit(ctx, scheduler.Light, &pruneItem{
		s:    w.s,
		dst:  w.dst,
		keep: keep,
	})
}

// stale stats the target and applies the rebuild decision. A directory
// squatting on a file's target path always counts as stale; the action
// executor repairs it.
func (w *walkItem) stale(srcMTime time.Time, dstPath string, cfg *config.Effective) bool {
	fi, err := os.Stat(dstPath)
	if err != nil || fi.IsDir() {
		return true
	}
	return needsRebuild(srcMTime, fi.ModTime(), true, cfg)
}

// entryIgnored checks the entry name against the ignore globs and, when
// configured, the compiled ignore expressions.
func (w *walkItem) entryIgnored(cfg *config.Effective, entry os.DirEntry) (bool, error) {
	name := entry.Name()
	for _, glob := range cfg.IgnoreGlobs {
		if ok, _ := filepath.Match(glob, name); ok {
			return true, nil
		}
	}
	for _, pattern := range cfg.IgnoreRegexes {
		if regex.Match(pattern, name) {
			return true, nil
		}
	}

	if cfg.Ignore == nil {
		return false, nil
	}

	env := &expression.Env{
		Name:  name,
		Ext:   filepath.Ext(name),
		Path:  filepath.Join(w.src, name),
		IsDir: entry.IsDir(),
	}
	if info, err := entry.Info(); err == nil {
		env.Size = info.Size()
		env.AgeDays = time.Since(info.ModTime()).Hours() / 24
	}

	return cfg.Ignore.MatchAny(env)
}
