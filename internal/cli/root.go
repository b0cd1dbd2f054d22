package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Flag values are bound to package
// variables and reset to their defaults on every call.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slicermeta [flags] [file ...]",
		Short: "Prepend printer metadata headers to sliced G-code",
		Long: `slicermeta scans G-code produced by a slicer for metadata comments such as

  ; estimated printing time = 1h 30m 0s
  ; filament used [mm] = 2500.00

and rewrites each file in place with a header the printer firmware understands:

  ;FLAVOR:Marlin
  ;TIME:5400
  ;Filament used: 2.5m

Every original line is kept. Files are processed one at a time in argument
order; a failing file is reported and the remaining files are still processed.
Running slicermeta twice on the same file prepends a second header.

Configuration is read from slicermeta.yaml in the working directory (or --config),
then SLICERMETA_* environment variables (optionally from --env-file or .env),
then command line flags.

Exit Codes:
  0  - Success
  1  - At least one file could not be rewritten
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or field catalog`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         runRewrite,
	}

	cmd.PersistentFlags().Bool("help", false, "Help for slicermeta")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	cmd.PersistentFlags().StringVar(&settingsFlags.configPath, "config", "",
		"Path to a slicermeta.yaml file (default: ./slicermeta.yaml when present)")
	cmd.PersistentFlags().StringVar(&settingsFlags.envFile, "env-file", "",
		"Read SLICERMETA_* variables from this dotenv file (default: ./.env when present)")

	cmd.Flags().BoolVar(&rewriteFlags.dryRun, "dry-run", false,
		"Print the rewritten content to stdout instead of writing files")
	cmd.Flags().StringVar(&rewriteFlags.profile, "profile", "",
		"Field catalog profile: default or extended")
	cmd.Flags().StringVar(&rewriteFlags.onFieldError, "on-field-error", "",
		"What to do with an unparseable metadata value: abort (fail the file) or skip (omit the field)")
	cmd.Flags().BoolVar(&rewriteFlags.backup, "backup", false,
		"Copy each original file to <file>.bak before rewriting it")
	cmd.Flags().BoolVar(&rewriteFlags.confirm, "confirm", false,
		"Ask for confirmation before overwriting each file")
	cmd.Flags().BoolVar(&rewriteFlags.jsonOutput, "json", false,
		"Print a machine-readable summary of the batch to stdout")

	cmd.AddCommand(newCatalogCmd(), newVersionCmd())
	return cmd
}

// Execute runs the root command. Ctrl+C cancels the batch between files.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
