package inc

import (
	"os"
	"path/filepath"

	"github.com/perlcheck/perlcheck/pkg/shared/config"
	"github.com/perlcheck/perlcheck/pkg/shared/files"
)

// conventionalLibDirs are the project-relative directories probed for module
// libraries, in precedence order. The local::lib path additionally needs the
// host perl version appended.
var conventionalLibDirs = []string{"lib", filepath.Join("t", "lib"), filepath.Join("xt", "lib")}

// Resolver computes the ordered include-path list handed to the interpreter.
type Resolver struct {
	// Baseline is the library directory bundled with the tool itself. It is
	// always the first entry and is never checked for existence.
	Baseline string
	// PerlVersion is the host interpreter's $Config{version} (e.g. "5.36.0").
	// When empty the local::lib candidate is skipped.
	PerlVersion string
}

// DefaultBaseline returns the bundled library directory shipped alongside
// the executable.
func DefaultBaseline() string {
	exe, err := os.Executable()
	if err != nil {
		return "lib"
	}
	return filepath.Join(filepath.Dir(exe), "lib")
}

// Resolve builds the search-path list for a project root. Convention-based
// candidates are included only when they exist as directories; explicitly
// configured libs are trusted verbatim. The result is deduplicated keeping
// the first occurrence, so precedence is stable.
func (r Resolver) Resolve(root string, cfg config.Inc) []string {
	paths := []string{r.Baseline}

	if !cfg.ReplaceDefaultLibs {
		for _, candidate := range r.conventionalCandidates(root) {
			if files.IsDirectory(candidate) {
				paths = append(paths, candidate)
			}
		}
	}
	paths = append(paths, cfg.Libs...)

	return dedupe(paths)
}

func (r Resolver) conventionalCandidates(root string) []string {
	candidates := make([]string, 0, len(conventionalLibDirs)+1)
	for _, dir := range conventionalLibDirs {
		candidates = append(candidates, filepath.Join(root, dir))
	}
	if r.PerlVersion != "" {
		candidates = append(candidates, filepath.Join(root, "local", "lib", "perl5", r.PerlVersion))
	}
	return candidates
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}
