package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/slicermeta/slicermeta/internal/catalog"
	"github.com/slicermeta/slicermeta/internal/config"
	"github.com/slicermeta/slicermeta/internal/files/filesystem"
	"github.com/slicermeta/slicermeta/internal/logging"
	"github.com/slicermeta/slicermeta/internal/rewrite"
	"github.com/slicermeta/slicermeta/internal/translate"
	"github.com/slicermeta/slicermeta/internal/tui"
	"github.com/slicermeta/slicermeta/internal/ui"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// rewriteFlagValues holds the flag values of the root command.
type rewriteFlagValues struct {
	dryRun       bool
	profile      string
	onFieldError string
	backup       bool
	confirm      bool
	jsonOutput   bool
}

var rewriteFlags rewriteFlagValues

// fileSystem is replaced in tests.
var fileSystem filesystem.FileSystemProvider = filesystem.NewOSFileSystem()

// interactive reports whether the progress view may take over the terminal.
var interactive = tui.IsInteractive

func runRewrite(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := loadSettings(cmd, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("profile") {
			cfg.Profile = rewriteFlags.profile
		}
		if flags.Changed("on-field-error") {
			cfg.OnFieldError = rewriteFlags.onFieldError
		}
		if flags.Changed("backup") {
			cfg.Backup = rewriteFlags.backup
		}
		if flags.Changed("dry-run") {
			cfg.DryRun = rewriteFlags.dryRun
		}
	})
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	useProgress := len(args) > 1 && !rewriteFlags.confirm && !cfg.DryRun && !rewriteFlags.jsonOutput && interactive()

	var logger slicermeta.Logger
	switch {
	case useProgress:
		logger = logging.NewNullLogger()
	case stderr == os.Stderr:
		logger = logging.NewConsoleLogger(verbose).WithStyle(tui.UseColor(os.Stderr))
	default:
		logger = logging.NewConsoleLoggerTo(stderr, verbose)
	}

	var approver slicermeta.Approver
	if rewriteFlags.confirm && !cfg.DryRun {
		approver = ui.NewInteractiveApproverWith(cmd.InOrStdin(), stderr, verbose)
	} else {
		approver = ui.NewAutoApprover(logger)
	}

	// Previews go to stderr when stdout carries the JSON summary.
	var previewOut io.Writer = stdout
	if rewriteFlags.jsonOutput {
		previewOut = stderr
	}

	rewriter := rewrite.NewRewriter(fileSystem, pipeline, logger, approver, rewrite.Options{
		DryRun:        cfg.DryRun,
		Backup:        cfg.Backup,
		Output:        previewOut,
		PreviewBanner: len(args) > 1,
	})

	ctx := commandContext(cmd)
	var batch slicermeta.BatchResult
	if useProgress {
		batch, err = tui.RunProgress(ctx, args, rewriter.RewriteFile, cmd.InOrStdin(), stderr)
		if err != nil {
			return err
		}
	} else {
		batch = rewriter.RewriteAll(ctx, args)
	}

	if rewriteFlags.jsonOutput {
		if err := writeJSON(stdout, batch); err != nil {
			return err
		}
	}
	return batch.Err()
}

// buildPipeline resolves the catalog profile and validates it once.
func buildPipeline(cfg *config.Config) (*translate.Pipeline, error) {
	cat, err := catalog.ForProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}
	policy, err := translate.ParsePolicy(cfg.OnFieldError)
	if err != nil {
		return nil, err
	}
	return translate.NewPipeline(cat, translate.Options{OnFieldError: policy})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
