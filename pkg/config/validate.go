package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/mediaforge/archon/pkg/regex"
)

// File suffixes must look like ".flac", matching what filepath.Ext yields.
var suffixPattern = regexp.MustCompile(`^\.[\w]+$`)

func validateSuffixes(field string, suffixes []string) error {
	for _, suffix := range suffixes {
		if !suffixPattern.MatchString(suffix) {
			return errors.Errorf("%s: %q is not a file suffix of the form \".flac\"", field, suffix)
		}
	}
	return nil
}

func validateIsDir(field string, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "%s: %q", field, path)
	}
	if !fi.IsDir() {
		return errors.Errorf("%s: %q is not a directory", field, path)
	}
	return nil
}

func validatePositive(field string, v int) error {
	if v < 0 {
		return errors.Errorf("%s: %d is not a positive integer", field, v)
	}
	return nil
}

// Validate checks the resolved base configuration. It is called once after
// Init; override records are validated separately at merge time.
func (c *Configuration) Validate() error {
	if c.Source == "" {
		return errors.New("source must be set")
	}
	if c.Target == "" {
		return errors.New("target must be set")
	}
	if err := validateIsDir("source", c.Source); err != nil {
		return err
	}
	if err := validateIsDir("target", c.Target); err != nil {
		return err
	}

	if err := regex.ValidatePatterns(c.IgnoreRegexes); err != nil {
		return errors.Wrap(err, "ignore_regexes")
	}

	if err := validateSuffixes("copier.inputs", c.Copier.Inputs); err != nil {
		return err
	}
	if err := validateSuffixes("converter.inputs", c.Converter.Inputs); err != nil {
		return err
	}

	if len(c.Converter.Inputs) > 0 {
		if err := validateSuffixes("converter.output", []string{c.Converter.Output}); err != nil {
			return err
		}
		if c.Converter.Exe != "" {
			if fi, err := os.Stat(c.Converter.Exe); err != nil || fi.IsDir() {
				return errors.Errorf("converter.exe: cannot access converter at %q", c.Converter.Exe)
			}
		}
		if err := validateCommandTemplate(c.Converter.Cmd); err != nil {
			return err
		}
	}

	switch c.OnOverrideError {
	case OnOverrideErrorSkipConvert, OnOverrideErrorSkipSubtree:
	default:
		return errors.Errorf("on_override_error: %q is not one of %q or %q",
			c.OnOverrideError, OnOverrideErrorSkipConvert, OnOverrideErrorSkipSubtree)
	}

	for _, check := range []struct {
		field string
		value int
	}{
		{"pools.light_multiplier", c.Pools.LightMultiplier},
		{"pools.heavy_multiplier", c.Pools.HeavyMultiplier},
		{"pools.light_threads", c.Pools.LightThreads},
		{"pools.heavy_threads", c.Pools.HeavyThreads},
		{"converter.rate_limit", c.Converter.RateLimit},
	} {
		if err := validatePositive(check.field, check.value); err != nil {
			return err
		}
	}

	return nil
}

func validateCommandTemplate(cmd string) error {
	if cmd == "" {
		return errors.New("converter.cmd must be set when converter.inputs is not empty")
	}
	if !strings.Contains(cmd, "{src}") || !strings.Contains(cmd, "{dst}") {
		return errors.Errorf("converter.cmd: %q must contain both {src} and {dst} placeholders", cmd)
	}
	return nil
}
