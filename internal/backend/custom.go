package backend

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hashicorp/go-hclog"

	"github.com/perlcheck/perlcheck/internal/diag"
	"github.com/perlcheck/perlcheck/pkg/shared/config"
)

// LinePredicate inspects one line of a target file and returns a diagnostic
// fragment, or nil when the line is fine. Predicates receive the file path
// so they can scope themselves to specific files.
type LinePredicate func(lineText, filePath string) *diag.Fragment

// CustomBackend scans the target file line by line and runs every registered
// predicate on every line. It performs no process or network I/O.
type CustomBackend struct {
	predicates []LinePredicate
	logger     hclog.Logger
}

// NewCustomBackend compiles the declarative checks from configuration into
// predicates, in registration order. A check that fails to compile is a
// configuration error.
func NewCustomBackend(cfg *config.Config, logger hclog.Logger) (*CustomBackend, error) {
	backend := &CustomBackend{logger: logger}
	for i, check := range cfg.Custom.Checks {
		predicate, err := compileCheck(check)
		if err != nil {
			return nil, fmt.Errorf("custom.checks[%d]: %w", i, err)
		}
		backend.predicates = append(backend.predicates, predicate)
	}
	return backend, nil
}

// Register appends a programmatic predicate after the configured ones.
func (b *CustomBackend) Register(predicate LinePredicate) {
	b.predicates = append(b.predicates, predicate)
}

func (b *CustomBackend) Origin() string {
	return OriginCustom
}

// Check reads the target line by line (1-based numbering) and collects
// findings ordered by line, then by predicate registration.
func (b *CustomBackend) Check(targetPath string) ([]diag.Diagnostic, error) {
	file, err := os.Open(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read target file %q: %w", targetPath, err)
	}
	defer file.Close()

	var diags []diag.Diagnostic
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		for _, predicate := range b.predicates {
			fragment := predicate(scanner.Text(), targetPath)
			if fragment == nil {
				continue
			}
			diags = append(diags, diag.Diagnostic{
				Severity: fragment.Severity,
				Message:  fragment.Message,
				Line:     lineNo,
				Origin:   OriginCustom,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan target file %q: %w", targetPath, err)
	}
	return diags, nil
}

// compileCheck turns one declarative check into a predicate. The file glob
// is matched against the target's base name, keeping the scoping rule next
// to the pattern instead of buried inside predicate bodies.
func compileCheck(check config.CustomCheck) (LinePredicate, error) {
	if check.Pattern == "" {
		return nil, fmt.Errorf("the 'pattern' field must be specified")
	}
	re, err := regexp.Compile(check.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", check.Pattern, err)
	}

	severity := diag.Severity(check.Severity)
	if check.Severity == "" {
		severity = diag.SeverityWarning
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity %q", check.Severity)
	}

	message := check.Message
	if message == "" {
		message = fmt.Sprintf("line matches %s", check.Pattern)
	}

	return func(lineText, filePath string) *diag.Fragment {
		if check.File != "" {
			if ok, _ := filepath.Match(check.File, filepath.Base(filePath)); !ok {
				return nil
			}
		}
		if !re.MatchString(lineText) {
			return nil
		}
		return &diag.Fragment{Severity: severity, Message: message}
	}, nil
}
