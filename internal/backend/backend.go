// Package backend holds the checker backends: each one inspects a target
// file with its own strategy and reports findings through the same contract.
package backend

import (
	"github.com/perlcheck/perlcheck/internal/diag"
)

// Backend origins, used to tag diagnostics and to scope suppression rules.
const (
	OriginCompile = "compile"
	OriginCustom  = "custom"
)

// CheckBackend inspects a target file and produces zero or more diagnostics.
// A returned error means the backend could not run at all (a fatal condition
// for the whole run); findings are always returned as data.
type CheckBackend interface {
	Origin() string
	Check(targetPath string) ([]diag.Diagnostic, error)
}
