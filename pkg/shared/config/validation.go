package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/perlcheck/perlcheck/internal/diag"
)

// ValidateConfig checks the loaded configuration for values that would only
// fail later, mid-run: bad regexes and unknown severities are configuration
// errors and must abort before any backend is built.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration object is nil")
	}
	for i, pattern := range cfg.Compile.Skip {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("compile.skip[%d]: invalid pattern %q: %w", i, pattern, err)
		}
	}
	for i, check := range cfg.Custom.Checks {
		if err := validateCustomCheck(&check); err != nil {
			return fmt.Errorf("custom.checks[%d]: %w", i, err)
		}
	}
	return nil
}

func validateCustomCheck(check *CustomCheck) error {
	if check.Pattern == "" {
		return fmt.Errorf("the 'pattern' field must be specified")
	}
	if _, err := regexp.Compile(check.Pattern); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", check.Pattern, err)
	}
	if check.Severity != "" && !diag.Severity(check.Severity).IsValid() {
		return fmt.Errorf("invalid severity %q: must be %q or %q", check.Severity, diag.SeverityWarning, diag.SeverityError)
	}
	if check.File != "" {
		if _, err := filepath.Match(check.File, "probe"); err != nil {
			return fmt.Errorf("invalid file glob %q: %w", check.File, err)
		}
	}
	return nil
}
