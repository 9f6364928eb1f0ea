// Package checker orchestrates the configured backends against target files
// and aggregates their diagnostics into one ordered, filtered list.
package checker

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/perlcheck/perlcheck/internal/backend"
	"github.com/perlcheck/perlcheck/internal/diag"
	"github.com/perlcheck/perlcheck/internal/suppress"
	"github.com/perlcheck/perlcheck/pkg/shared/config"
)

// Checker owns the configuration and the backend instances for one project
// root. A constructed Checker can be reused across target files; nothing in
// it mutates after New.
type Checker struct {
	cfg         *config.Config         // Validated configuration for this run
	projectRoot string                 // Directory the checked project lives in
	backends    []backend.CheckBackend // Backends in registration order
	filter      *suppress.Filter       // Per-origin suppression rules
	logger      hclog.Logger           // Logger for run progress and errors
}

// New validates the configuration and builds the backend set: the compile
// backend first, the custom backend second. Configuration problems are fatal
// here, before any target file is touched.
func New(cfg *config.Config, projectRoot string, logger hclog.Logger) (*Checker, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	custom, err := backend.NewCustomBackend(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build custom backend: %w", err)
	}

	filter := suppress.NewFilter()
	if err := filter.Add(backend.OriginCompile, cfg.Compile.Skip); err != nil {
		return nil, fmt.Errorf("failed to compile skip rules: %w", err)
	}

	return &Checker{
		cfg:         cfg,
		projectRoot: projectRoot,
		backends: []backend.CheckBackend{
			backend.NewCompileBackend(cfg, projectRoot, logger),
			custom,
		},
		filter: filter,
		logger: logger,
	}, nil
}

// CustomBackend exposes the custom backend so callers can register
// programmatic predicates before running.
func (c *Checker) CustomBackend() *backend.CustomBackend {
	for _, b := range c.backends {
		if custom, ok := b.(*backend.CustomBackend); ok {
			return custom
		}
	}
	return nil
}

// Run checks one target file. Backends execute sequentially in registration
// order; a backend failure aborts the whole run. Surviving diagnostics are
// concatenated in backend order, each backend's internal order preserved.
func (c *Checker) Run(targetPath string) ([]diag.Diagnostic, error) {
	runID := uuid.New()
	c.logger.Debug("check run starting", "run_id", runID, "target", targetPath)

	diags := []diag.Diagnostic{}
	for _, b := range c.backends {
		found, err := b.Check(targetPath)
		if err != nil {
			c.logger.Error("backend failed", "run_id", runID, "backend", b.Origin(), "error", err)
			return nil, fmt.Errorf("backend %q failed: %w", b.Origin(), err)
		}
		diags = append(diags, c.filter.Apply(found)...)
	}

	c.logger.Debug("check run finished", "run_id", runID, "target", targetPath, "diagnostics", len(diags))
	return diags, nil
}
