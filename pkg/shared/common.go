package shared

import (
	"github.com/spf13/pflag"
)

// Versions struct holds version information for the application.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// HasFlags reports whether any flag in the set was explicitly changed.
func HasFlags(flags *pflag.FlagSet) bool {
	found := false
	flags.Visit(func(f *pflag.Flag) {
		found = true
	})
	return found
}
