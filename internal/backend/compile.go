package backend

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/perlcheck/perlcheck/internal/diag"
	"github.com/perlcheck/perlcheck/internal/inc"
	"github.com/perlcheck/perlcheck/internal/perlout"
	"github.com/perlcheck/perlcheck/pkg/shared/config"
)

// CompileBackend runs the external interpreter in check-only mode against
// the target file and parses its combined output into diagnostics. The
// include-path list is resolved once at construction and never mutated.
type CompileBackend struct {
	perlBin  string
	incPaths []string
	logger   hclog.Logger
}

// NewCompileBackend builds a compile backend for one project root. The host
// interpreter version is queried to form the local::lib candidate; a failed
// query only drops that candidate, it is not fatal here.
func NewCompileBackend(cfg *config.Config, projectRoot string, logger hclog.Logger) *CompileBackend {
	perlBin := cfg.PerlBinary()
	resolver := inc.Resolver{
		Baseline:    inc.DefaultBaseline(),
		PerlVersion: queryPerlVersion(perlBin, logger),
	}
	paths := resolver.Resolve(projectRoot, cfg.Compile.Inc)
	logger.Debug("resolved include paths", "paths", paths)

	return &CompileBackend{
		perlBin:  perlBin,
		incPaths: paths,
		logger:   logger,
	}
}

func (b *CompileBackend) Origin() string {
	return OriginCompile
}

// IncPaths returns a copy of the resolved include-path list.
func (b *CompileBackend) IncPaths() []string {
	return append([]string(nil), b.incPaths...)
}

// Check invokes "perl -c" on the target file. A non-zero interpreter exit is
// expected for files with errors and is not a failure; only an unspawnable
// process is surfaced as an error.
func (b *CompileBackend) Check(targetPath string) ([]diag.Diagnostic, error) {
	foreign, err := hasForeignShebang(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read target file %q: %w", targetPath, err)
	}
	if foreign {
		b.logger.Debug("shebang names another interpreter, skipping compile check", "target", targetPath)
		return nil, nil
	}

	cmd := exec.Command(b.perlBin, b.buildArgs(targetPath)...)
	b.logger.Debug("running compile check", "cmd", cmd.Args)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			return nil, fmt.Errorf("failed to run interpreter %q: %w", b.perlBin, err)
		}
	}

	diags := perlout.Parse(string(output))
	for i := range diags {
		diags[i].Origin = OriginCompile
	}
	return diags, nil
}

// buildArgs assembles the check-only invocation: one -I argument per
// include path, in precedence order, then the target file.
func (b *CompileBackend) buildArgs(targetPath string) []string {
	args := make([]string, 0, len(b.incPaths)+2)
	args = append(args, "-c")
	for _, path := range b.incPaths {
		args = append(args, "-I"+path)
	}
	return append(args, targetPath)
}

// hasForeignShebang reports whether the file's first line is a shebang that
// does not name perl. Such files belong to another interpreter and must not
// be fed to the compile check at all.
func hasForeignShebang(targetPath string) (bool, error) {
	file, err := os.Open(targetPath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	first := scanner.Text()
	if !strings.HasPrefix(first, "#!") {
		return false, nil
	}
	return !strings.Contains(first, "perl"), nil
}

// queryPerlVersion asks the interpreter for $Config{version}. The result
// only feeds a convention-based include candidate, so any failure degrades
// to an empty version rather than an error.
func queryPerlVersion(perlBin string, logger hclog.Logger) string {
	out, err := exec.Command(perlBin, "-MConfig", "-e", "print $Config{version}").Output()
	if err != nil {
		logger.Debug("failed to query interpreter version", "interpreter", perlBin, "error", err)
		return ""
	}
	version := strings.TrimSpace(string(out))
	if strings.ContainsAny(version, " \t\n") {
		return ""
	}
	return version
}
