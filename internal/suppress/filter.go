// Package suppress drops diagnostics matched by backend-scoped skip rules
// before they reach the caller.
package suppress

import (
	"fmt"
	"regexp"

	"github.com/perlcheck/perlcheck/internal/diag"
)

// Filter holds compiled skip patterns keyed by the backend origin they apply
// to. A pattern never crosses origins.
type Filter struct {
	rules map[string][]*regexp.Regexp
}

func NewFilter() *Filter {
	return &Filter{rules: make(map[string][]*regexp.Regexp)}
}

// Add compiles patterns and scopes them to one origin. An invalid pattern is
// a configuration error.
func (f *Filter) Add(origin string, patterns []string) error {
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid skip pattern %q for %q: %w", pattern, origin, err)
		}
		f.rules[origin] = append(f.rules[origin], re)
	}
	return nil
}

// Apply returns the diagnostics that survive filtering, in their original
// relative order. A diagnostic is dropped when any rule scoped to its origin
// matches its message.
func (f *Filter) Apply(diags []diag.Diagnostic) []diag.Diagnostic {
	if len(f.rules) == 0 {
		return diags
	}
	kept := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if !f.suppressed(d) {
			kept = append(kept, d)
		}
	}
	return kept
}

func (f *Filter) suppressed(d diag.Diagnostic) bool {
	for _, re := range f.rules[d.Origin] {
		if re.MatchString(d.Message) {
			return true
		}
	}
	return false
}
