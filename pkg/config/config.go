package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/mediaforge/archon/pkg/logger"
)

const (
	// DefaultFilename is the base configuration file looked up next to the
	// working directory when --config is not given.
	DefaultFilename = "media-archon.toml"

	// DefaultOverrideFilename is the per-directory override file looked for
	// during every walk unless the base config names another one.
	DefaultOverrideFilename = ".archon.toml"

	// Override-parse-failure policies.
	OnOverrideErrorSkipConvert = "skip-convert"
	OnOverrideErrorSkipSubtree = "skip-subtree"

	defaultLightMultiplier = 10
	defaultHeavyMultiplier = 1
)

/* Vars */

var (
	cfgPath = ""

	Delimiter = "."
	Config    *Configuration
	K         = koanf.New(Delimiter)

	// Internal
	log = logger.GetLogger("cfg")
)

/* Public */

func Init(configFilePath string) error {
	// set package variables
	cfgPath = configFilePath

	// load config
	if err := K.Load(file.Provider(configFilePath), toml.Parser()); err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	// load environment variables
	if err := K.Load(env.Provider("ARCHON__", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ARCHON__")), "_", ".", -1)
	}), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	// unmarshal config
	if err := K.Unmarshal("", &Config); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	Config.applyDefaults()

	if err := Config.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func ShowUsing() {
	log.Infof("Using CONFIG = %q", cfgPath)
}

// Path returns the loaded base config file path.
func Path() string {
	return cfgPath
}

/* Private */

func (c *Configuration) applyDefaults() {
	if c.OverrideFilename == "" {
		c.OverrideFilename = DefaultOverrideFilename
	}
	if c.OnOverrideError == "" {
		c.OnOverrideError = OnOverrideErrorSkipConvert
	}
	if c.Pools.LightMultiplier == 0 {
		c.Pools.LightMultiplier = defaultLightMultiplier
	}
	if c.Pools.HeavyMultiplier == 0 {
		c.Pools.HeavyMultiplier = defaultHeavyMultiplier
	}
}
