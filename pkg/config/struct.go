package config

// CopierConfig selects which source files are mirrored byte-for-byte.
type CopierConfig struct {
	Inputs []string `koanf:"inputs"`
}

// ConverterConfig selects which source files are transcoded via the external
// converter, and how the converter is invoked. Cmd is an argv template; every
// occurrence of {src} and {dst} is replaced with the absolute source and
// destination paths before execution.
type ConverterConfig struct {
	Inputs    []string `koanf:"inputs"`
	Output    string   `koanf:"output"`
	Exe       string   `koanf:"exe"`
	Cmd       string   `koanf:"cmd"`
	RateLimit int      `koanf:"rate_limit"`
}

// PoolsConfig sizes the light and heavy worker pools. The *Threads fields are
// absolute overrides; when zero, pool size is multiplier * detected CPUs.
type PoolsConfig struct {
	LightMultiplier int `koanf:"light_multiplier"`
	HeavyMultiplier int `koanf:"heavy_multiplier"`
	LightThreads    int `koanf:"light_threads"`
	HeavyThreads    int `koanf:"heavy_threads"`
}

// NotifyConfig enables an optional webhook run summary.
type NotifyConfig struct {
	WebhookURL string `koanf:"webhook_url"`
}

type Configuration struct {
	Source            string   `koanf:"source"`
	Target            string   `koanf:"target"`
	OverrideFilename  string   `koanf:"override_filename"`
	IgnoreGlobs       []string `koanf:"ignore_globs"`
	IgnoreRegexes     []string `koanf:"ignore_regexes"`
	IgnoreExpressions []string `koanf:"ignore_expressions"`
	OnOverrideError   string   `koanf:"on_override_error"`

	Copier    CopierConfig    `koanf:"copier"`
	Converter ConverterConfig `koanf:"converter"`
	Pools     PoolsConfig     `koanf:"pools"`
	Notify    NotifyConfig    `koanf:"notify"`
}

// CopierOverride mirrors CopierConfig with optional fields.
type CopierOverride struct {
	Inputs *[]string `koanf:"inputs"`
}

// ConverterOverride mirrors ConverterConfig with optional fields. Exe, pool
// sizing and rate limiting are root-only and cannot be overridden per
// directory.
type ConverterOverride struct {
	Inputs *[]string `koanf:"inputs"`
	Output *string   `koanf:"output"`
	Cmd    *string   `koanf:"cmd"`
}

// Override is a directory-scoped configuration record. Set fields replace
// the parent directory's resolved values, unset fields inherit.
type Override struct {
	IgnoreGlobs       *[]string          `koanf:"ignore_globs"`
	IgnoreRegexes     *[]string          `koanf:"ignore_regexes"`
	IgnoreExpressions *[]string          `koanf:"ignore_expressions"`
	OnOverrideError   *string            `koanf:"on_override_error"`
	Copier            *CopierOverride    `koanf:"copier"`
	Converter         *ConverterOverride `koanf:"converter"`
}
