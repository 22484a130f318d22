package config

import (
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"

	"github.com/mediaforge/archon/pkg/expression"
	"github.com/mediaforge/archon/pkg/regex"
)

// Effective is the per-directory resolved parameter set. Values are never
// mutated after construction; a child directory either shares its parent's
// Effective or gets a fresh one from Merge.
type Effective struct {
	OverrideFilename string
	IgnoreGlobs      []string
	IgnoreRegexes    []string
	Ignore           *expression.Set
	CopyExts         *strset.Set
	ConvertExts      *strset.Set
	ConverterExe     string
	ConverterCmd     string
	OutputExt        string
	OnOverrideError  string

	// Timestamps feeding the staleness decision: the base config file's
	// mtime, and the mtime of the nearest governing override file (zero
	// when no override governs this directory).
	BaseMTime     time.Time
	OverrideMTime time.Time
}

// NewEffective resolves the root directory's parameter set from the base
// configuration and the base config file's modification time.
func NewEffective(c *Configuration, baseMTime time.Time) (*Effective, error) {
	ignore, err := expression.Compile(c.IgnoreExpressions)
	if err != nil {
		return nil, err
	}

	return &Effective{
		OverrideFilename: c.OverrideFilename,
		IgnoreGlobs:      c.IgnoreGlobs,
		IgnoreRegexes:    c.IgnoreRegexes,
		Ignore:           ignore,
		CopyExts:         strset.New(c.Copier.Inputs...),
		ConvertExts:      strset.New(c.Converter.Inputs...),
		ConverterExe:     c.Converter.Exe,
		ConverterCmd:     c.Converter.Cmd,
		OutputExt:        c.Converter.Output,
		OnOverrideError:  c.OnOverrideError,
		BaseMTime:        baseMTime,
	}, nil
}

// LoadOverride parses a directory-scoped override file.
func LoadOverride(path string) (*Override, error) {
	k := koanf.New(Delimiter)
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, "load override")
	}

	var o *Override
	if err := k.Unmarshal("", &o); err != nil {
		return nil, errors.Wrap(err, "unmarshal override")
	}
	if o == nil {
		o = &Override{}
	}

	return o, nil
}

// Merge folds an override record into the receiver, producing a fresh
// Effective for the override's directory and its descendants. The receiver
// is left untouched. overrideMTime becomes the subtree's governing override
// timestamp regardless of which fields the override sets.
func (e *Effective) Merge(o *Override, overrideMTime time.Time) (*Effective, error) {
	merged := *e
	merged.OverrideMTime = overrideMTime

	if o.IgnoreGlobs != nil {
		merged.IgnoreGlobs = *o.IgnoreGlobs
	}
	if o.IgnoreRegexes != nil {
		if err := regex.ValidatePatterns(*o.IgnoreRegexes); err != nil {
			return nil, errors.Wrap(err, "ignore_regexes")
		}
		merged.IgnoreRegexes = *o.IgnoreRegexes
	}
	if o.IgnoreExpressions != nil {
		ignore, err := expression.Compile(*o.IgnoreExpressions)
		if err != nil {
			return nil, err
		}
		merged.Ignore = ignore
	}
	if o.OnOverrideError != nil {
		switch *o.OnOverrideError {
		case OnOverrideErrorSkipConvert, OnOverrideErrorSkipSubtree:
			merged.OnOverrideError = *o.OnOverrideError
		default:
			return nil, errors.Errorf("on_override_error: %q is not a known policy", *o.OnOverrideError)
		}
	}

	if o.Copier != nil && o.Copier.Inputs != nil {
		if err := validateSuffixes("copier.inputs", *o.Copier.Inputs); err != nil {
			return nil, err
		}
		merged.CopyExts = strset.New(*o.Copier.Inputs...)
	}

	if o.Converter != nil {
		if o.Converter.Inputs != nil {
			if err := validateSuffixes("converter.inputs", *o.Converter.Inputs); err != nil {
				return nil, err
			}
			merged.ConvertExts = strset.New(*o.Converter.Inputs...)
		}
		if o.Converter.Output != nil {
			if err := validateSuffixes("converter.output", []string{*o.Converter.Output}); err != nil {
				return nil, err
			}
			merged.OutputExt = *o.Converter.Output
		}
		if o.Converter.Cmd != nil {
			if err := validateCommandTemplate(*o.Converter.Cmd); err != nil {
				return nil, err
			}
			merged.ConverterCmd = *o.Converter.Cmd
		}
	}

	return &merged, nil
}

// WithoutConversions returns a copy that converts nothing. Used when an
// override file fails to parse and policy is skip-convert.
func (e *Effective) WithoutConversions() *Effective {
	stripped := *e
	stripped.ConvertExts = strset.New()
	return &stripped
}

// LightWorkers returns the light pool size for the detected CPU count.
func (c *Configuration) LightWorkers(cpus int) int {
	if c.Pools.LightThreads > 0 {
		return c.Pools.LightThreads
	}
	return max(1, c.Pools.LightMultiplier*cpus)
}

// HeavyWorkers returns the heavy pool size for the detected CPU count.
func (c *Configuration) HeavyWorkers(cpus int) int {
	if c.Pools.HeavyThreads > 0 {
		return c.Pools.HeavyThreads
	}
	return max(1, c.Pools.HeavyMultiplier*cpus)
}
