package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigName is the config file probed in the project root when no
// --config flag is given.
const DefaultConfigName = ".perlcheck.yml"

// EnvReplaceDefaultLibs, when set to a truthy value, forces
// Compile.Inc.ReplaceDefaultLibs on even if the config file omits it.
const EnvReplaceDefaultLibs = "PERLCHECK_REPLACE_DEFAULT_LIBS"

type Config struct {
	Logger  Logger  `yaml:"logger"`
	Perl    Perl    `yaml:"perl"`
	Compile Compile `yaml:"compile"`
	Custom  Custom  `yaml:"custom"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Perl configures the external interpreter used for compile checks.
type Perl struct {
	Binary string `yaml:"binary"`
}

type Compile struct {
	Inc  Inc      `yaml:"inc"`
	Skip []string `yaml:"skip"`
}

// Inc configures the include-path resolution for the compile backend.
type Inc struct {
	Libs               []string `yaml:"libs"`
	ReplaceDefaultLibs bool     `yaml:"replace_default_libs"`
}

type Custom struct {
	Checks []CustomCheck `yaml:"checks"`
}

// CustomCheck is a declarative line predicate: Pattern is matched against
// every line of the target file, optionally scoped by a basename glob.
type CustomCheck struct {
	File     string `yaml:"file"`
	Pattern  string `yaml:"pattern"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
}

// PerlBinary returns the configured interpreter executable, defaulting to
// "perl" on the invocation path.
func (c *Config) PerlBinary() string {
	if c != nil && c.Perl.Binary != "" {
		return c.Perl.Binary
	}
	return "perl"
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data. A missing or
// unreadable file is an error; callers decide whether config is optional.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the config file at configPath and applies environment
// overrides. A referenced-but-missing file is a fatal configuration error.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	ApplyEnvOverrides(config)
	return config, nil
}

// NewDefaultConfig returns the built-in configuration used when no config
// file is present, with environment overrides applied.
func NewDefaultConfig() *Config {
	config := &Config{}
	ApplyEnvOverrides(config)
	return config
}

// ApplyEnvOverrides folds recognized process environment toggles into cfg.
// The only core-facing one flips replace_default_libs on.
func ApplyEnvOverrides(cfg *Config) {
	if isTruthy(os.Getenv(EnvReplaceDefaultLibs)) {
		cfg.Compile.Inc.ReplaceDefaultLibs = true
	}
}

func isTruthy(value string) bool {
	switch value {
	case "1", "true", "TRUE", "yes", "YES", "on", "ON":
		return true
	}
	return false
}
