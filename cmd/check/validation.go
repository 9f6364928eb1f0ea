package check

import (
	"fmt"
	"os"

	"github.com/perlcheck/perlcheck/internal/report"
	"github.com/perlcheck/perlcheck/pkg/shared/files"
)

// validateCheckArgs validates the arguments provided to the check command
// and returns the target file path.
func validateCheckArgs(options *RunOptionsCheck, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("exactly one target file must be specified")
	}

	targetPath := args[0]
	if err := files.ValidatePath(targetPath); err != nil {
		return "", fmt.Errorf("invalid target file %q: %w", targetPath, err)
	}

	switch options.Format {
	case report.FormatText, report.FormatJSON, report.FormatSarif:
	default:
		return "", fmt.Errorf("unknown output format %q: must be one of text, json, sarif", options.Format)
	}

	if options.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		options.Root = cwd
	} else if !files.IsDirectory(options.Root) {
		return "", fmt.Errorf("the project root does not exist: %v", options.Root)
	}

	return targetPath, nil
}
