package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perlcheck/perlcheck/cmd/check"
	"github.com/perlcheck/perlcheck/cmd/version"
	"github.com/perlcheck/perlcheck/pkg/shared/config"
	"github.com/perlcheck/perlcheck/pkg/shared/errors"
	"github.com/perlcheck/perlcheck/pkg/shared/files"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "perlcheck [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Perlcheck runs pluggable diagnostic backends against Perl source files.",
		Long: `Perlcheck is a diagnostic engine for Perl source files. It runs the host
	interpreter in check-only mode plus any configured line checks, and reports
	a unified, ordered diagnostic list for editor integrations.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .perlcheck.yml)")
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps errors to process exit codes.
// Diagnostics found by a check surface as a bare non-zero code; anything
// else is a genuine failure and gets printed.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		if _, statErr := os.Stat(config.DefaultConfigName); statErr == nil {
			cfgFile = config.DefaultConfigName
		}
	}

	if cfgFile != "" {
		expanded, expandErr := files.ExpandPath(cfgFile)
		if expandErr != nil {
			fmt.Fprintf(os.Stderr, "failed to expand config path: %v\n", expandErr)
			os.Exit(1)
		}
		AppConfig, err = config.LoadConfig(expanded)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
			os.Exit(1)
		}
	} else {
		AppConfig = config.NewDefaultConfig()
	}

	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	check.Init(AppConfig)
	version.Init(AppConfig)
}
