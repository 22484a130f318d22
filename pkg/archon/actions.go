package archon

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ensureDir makes path a directory, replacing any non-directory entry that
// unexpectedly sits there.
func ensureDir(path string) error {
	fi, err := os.Stat(path)
	if err == nil {
		if fi.IsDir() {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrap(err, "replace non-dir")
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.MkdirAll(path, 0755)
}

func (c *copyItem) Execute(ctx context.Context) {
	log := c.s.log
	log.Debugf("Copying %q -> %q", c.src, c.dst)

	if c.s.dryRun {
		log.Warnf("Dry-run enabled, skipping copy of %q", c.src)
		c.s.sum.CopiedFiles.Add(1)
		return
	}

	n, err := copyFile(c.src, c.dst, c.srcMTime)
	if err != nil {
		log.WithError(err).Errorf("Failed copying %q", c.src)
		c.s.sum.Record(KindCopy, c.src, err)
		return
	}

	c.s.sum.CopiedFiles.Add(1)
	c.s.sum.CopiedBytes.Add(uint64(n))
}

// ensureFileTarget clears a directory squatting on a file's target path.
func ensureFileTarget(path string) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return errors.Wrap(err, "replace non-file")
		}
	}
	return nil
}

func copyFile(src string, dst string, srcMTime time.Time) (int64, error) {
	if err := ensureFileTarget(dst); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return 0, err
	}

	if err := os.Chtimes(dst, srcMTime, srcMTime); err != nil {
		return n, errors.Wrap(err, "preserve mtime")
	}

	return n, nil
}

func (c *convertItem) Execute(ctx context.Context) {
	log := c.s.log
	log.Debugf("Converting %q -> %q", c.src, c.dst)

	argv, err := renderCommand(c.cfg.ConverterExe, c.cfg.ConverterCmd, c.src, c.dst)
	if err != nil {
		c.s.sum.Record(KindConvert, c.src, err)
		return
	}

	if c.s.dryRun {
		log.Warnf("Dry-run enabled, skipping convert of %q", c.src)
		c.s.sum.ConvertedFiles.Add(1)
		return
	}

	if err := ensureFileTarget(c.dst); err != nil {
		log.WithError(err).Errorf("Failed preparing convert target: %q", c.dst)
		c.s.sum.Record(KindConvert, c.src, err)
		return
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Never leave a partial output behind: a half-written artifact
		// would look up to date on the next run.
		os.Remove(c.dst)

		log.WithError(err).Errorf("Converter failed for %q", c.src)
		if tail := outputTail(output); tail != "" {
			log.Debugf("Converter output: %s", tail)
		}
		c.s.sum.Record(KindConvert, c.src, errors.Wrapf(err, "converter %q", filepath.Base(argv[0])))
		return
	}

	c.s.sum.ConvertedFiles.Add(1)
}

// outputTail returns the last few lines of converter output for diagnostics.
func outputTail(output []byte) string {
	const maxLines = 5

	s := strings.TrimSpace(string(output))
	if s == "" {
		return ""
	}

	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}
