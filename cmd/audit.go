package cmd

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/scylladb/go-set/strset"
	"github.com/spf13/cobra"

	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/logger"
	"github.com/mediaforge/archon/pkg/paths"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report target entries with no source counterpart",
	Long: `Scans source and target trees and reports stray target entries a sync run
would prune. Advisory only: nothing is removed, and per-directory override
files are not applied (the report uses the base configuration).`,

	Run: func(cmd *cobra.Command, args []string) {
		// init core
		if !initialized {
			initCore(true)
			initialized = true
		}

		// set log
		log := logger.GetLogger("audit")

		c := config.Config
		convertExts := strset.New(c.Converter.Inputs...)

		// expected holds source-relative paths a sync run would leave in
		// the target tree
		expected := strset.New()
		srcPaths, _ := paths.InFolder(c.Source, true, true)
		for _, p := range srcPaths {
			rel, err := filepath.Rel(c.Source, p.Path)
			if err != nil {
				continue
			}

			if !p.IsDir && p.FileName == c.OverrideFilename {
				continue
			}

			// convert targets are mirrored under the output suffix,
			// everything else keeps its name
			ext := filepath.Ext(p.FileName)
			if !p.IsDir && convertExts.Has(ext) {
				rel = strings.TrimSuffix(rel, ext) + c.Converter.Output
			}
			expected.Add(rel)
		}

		log.Infof("Indexed %d source entries from %q", expected.Size(), c.Source)

		dstPaths, _ := paths.InFolder(c.Target, true, true)
		sort.Slice(dstPaths, func(i, j int) bool {
			return len(dstPaths[i].Path) < len(dstPaths[j].Path)
		})

		strayDirs := strset.New()
		strayFiles := 0
		strayFolders := 0
		var straySize uint64

		for _, p := range dstPaths {
			rel, err := filepath.Rel(c.Target, p.Path)
			if err != nil || expected.Has(rel) {
				continue
			}

			// entries under an already-reported stray folder are implied
			if strayDirs.Has(filepath.Dir(rel)) {
				if p.IsDir {
					strayDirs.Add(rel)
				} else {
					straySize += uint64(p.Size)
				}
				continue
			}

			if p.IsDir {
				strayDirs.Add(rel)
				strayFolders++
				if empty, err := paths.IsDirEmpty(p.Path); err == nil && empty {
					log.Infof("Stray folder (empty): %q", p.Path)
				} else {
					log.Infof("Stray folder: %q", p.Path)
				}
				continue
			}

			strayFiles++
			straySize += uint64(p.Size)
			log.Infof("Stray file: %q (%s)", p.Path, humanize.IBytes(uint64(p.Size)))
		}

		log.Info("-----")
		log.WithField("stray_size", humanize.IBytes(straySize)).
			Infof("Found %d stray files and %d stray folders in %q", strayFiles, strayFolders, c.Target)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
