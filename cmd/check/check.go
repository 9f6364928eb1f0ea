package check

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perlcheck/perlcheck/internal/checker"
	"github.com/perlcheck/perlcheck/internal/report"
	"github.com/perlcheck/perlcheck/pkg/shared"
	"github.com/perlcheck/perlcheck/pkg/shared/config"
	"github.com/perlcheck/perlcheck/pkg/shared/errors"
	"github.com/perlcheck/perlcheck/pkg/shared/logger"
)

// RunOptionsCheck holds the arguments for the check command.
type RunOptionsCheck struct {
	Format string
	Root   string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	checkOptions      RunOptionsCheck
	exampleCheckUsage = `  # Checking a single file with the default text output
  perlcheck check lib/My/Module.pm

  # Structured output for editor integrations
  perlcheck check --format json script.pl

  # SARIF output for code-scanning pipelines
  perlcheck check --format sarif script.pl

  # Checking against a project rooted somewhere else
  perlcheck check --root /path/to/project /path/to/project/t/basic.t`
)

// CheckCmd represents the check command.
var CheckCmd = &cobra.Command{
	Use:                   "check [--format/-f text|json|sarif] [--root/-r DIR] FILE",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCheckUsage,
	Short:                 "Runs all configured diagnostic backends against a Perl source file",
	RunE:                  runCheckCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	CheckCmd.Flags().StringVarP(&checkOptions.Format, "format", "f", report.FormatText, "output format (text|json|sarif)")
	CheckCmd.Flags().StringVarP(&checkOptions.Root, "root", "r", "", "project root directory (default is the working directory)")
}

// runCheckCommand executes the check command.
func runCheckCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-check")

	targetPath, err := validateCheckArgs(&checkOptions, args)
	if err != nil {
		logger.Error("invalid check arguments", "error", err)
		return err
	}

	c, err := checker.New(AppConfig, checkOptions.Root, logger)
	if err != nil {
		logger.Error("failed to build checker", "error", err)
		return err
	}

	diags, err := c.Run(targetPath)
	if err != nil {
		logger.Error("check run failed", "target", targetPath, "error", err)
		return err
	}

	if err := report.Write(os.Stdout, checkOptions.Format, diags, targetPath); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}

	if len(diags) > 0 {
		return errors.NewDiagnosticsFoundError(len(diags))
	}

	logger.Debug("check command completed with no findings", "target", targetPath)
	return nil
}
