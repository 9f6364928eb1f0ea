package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".perlcheck.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
perl:
  binary: /usr/local/bin/perl
compile:
  inc:
    libs:
      - extra/lib
    replace_default_libs: true
  skip:
    - "redefined"
custom:
  checks:
    - file: "todo.pl"
      pattern: "TODO"
      severity: warning
      message: "unresolved TODO marker"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/usr/local/bin/perl", cfg.PerlBinary())
	assert.Equal(t, []string{"extra/lib"}, cfg.Compile.Inc.Libs)
	assert.True(t, cfg.Compile.Inc.ReplaceDefaultLibs)
	assert.Equal(t, []string{"redefined"}, cfg.Compile.Skip)
	require.Len(t, cfg.Custom.Checks, 1)
	assert.Equal(t, "todo.pl", cfg.Custom.Checks[0].File)
}

func TestLoadConfigMissingFileIsFatal(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadConfigDirectoryIsFatal(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestPerlBinaryDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "perl", cfg.PerlBinary())
}

func TestEnvOverrideFlipsReplaceDefaultLibs(t *testing.T) {
	t.Setenv(EnvReplaceDefaultLibs, "1")

	cfg := &Config{}
	ApplyEnvOverrides(cfg)
	assert.True(t, cfg.Compile.Inc.ReplaceDefaultLibs)
}

func TestEnvOverrideIgnoresFalsyValues(t *testing.T) {
	for _, value := range []string{"", "0", "false", "off", "nonsense"} {
		t.Setenv(EnvReplaceDefaultLibs, value)

		cfg := &Config{}
		ApplyEnvOverrides(cfg)
		assert.False(t, cfg.Compile.Inc.ReplaceDefaultLibs, "value %q", value)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg: &Config{
				Compile: Compile{Skip: []string{`redefined`}},
				Custom:  Custom{Checks: []CustomCheck{{Pattern: "TODO", Severity: "error"}}},
			},
			wantErr: "",
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "nil",
		},
		{
			name:    "bad skip pattern",
			cfg:     &Config{Compile: Compile{Skip: []string{`(`}}},
			wantErr: "compile.skip[0]",
		},
		{
			name:    "check without pattern",
			cfg:     &Config{Custom: Custom{Checks: []CustomCheck{{}}}},
			wantErr: "pattern",
		},
		{
			name:    "bad check pattern",
			cfg:     &Config{Custom: Custom{Checks: []CustomCheck{{Pattern: `(`}}}},
			wantErr: "invalid pattern",
		},
		{
			name:    "bad severity",
			cfg:     &Config{Custom: Custom{Checks: []CustomCheck{{Pattern: "x", Severity: "fatal"}}}},
			wantErr: "invalid severity",
		},
		{
			name:    "bad file glob",
			cfg:     &Config{Custom: Custom{Checks: []CustomCheck{{Pattern: "x", File: "[bad"}}}},
			wantErr: "invalid file glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
