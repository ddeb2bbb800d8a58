package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ethanolivertroy/autoreqs/internal/config"
	"github.com/ethanolivertroy/autoreqs/internal/inventory"
	"github.com/ethanolivertroy/autoreqs/internal/logging"
	"github.com/ethanolivertroy/autoreqs/internal/manifest"
	"github.com/ethanolivertroy/autoreqs/internal/models"
	"github.com/ethanolivertroy/autoreqs/internal/reporter"
	"github.com/ethanolivertroy/autoreqs/internal/scanner"
)

// NewRootCmd builds the autoreqs command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoreqs <folder_path>",
		Short: "Analyze Python code and prepare the requirements.txt file",
		Long: `autoreqs scans a folder for Python source (.py) and notebook (.ipynb)
files, collects the top-level packages they import, and writes a
requirements.txt in that folder pinning every imported package that is
installed in the current environment (as reported by pip freeze).

Imports are found with a line-based pattern, so aliases, conditional
imports and dynamic imports are not understood. Imported packages that
are not installed (standard library, local modules) are left out.

Settings can also come from AUTOREQS_* environment variables or a
[tool.autoreqs] table in the folder's pyproject.toml.

Examples:
  # Write ./project/requirements.txt
  autoreqs ./project

  # Overwrite an existing manifest without asking
  autoreqs ./project --yes

  # Show what would be written and a table of every import
  autoreqs ./project --dry-run --summary table

  # Pin against a saved environment instead of running pip
  autoreqs ./project --inventory frozen.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScan,
	}

	d := models.DefaultConfig()
	f := cmd.Flags()
	f.StringSlice("ext", d.Extensions, "File extensions to scan")
	f.StringSlice("exclude", nil, "Directory names to skip (e.g. .venv,node_modules)")
	f.String("pip", d.PipCommand, "Command that prints installed packages as name==version")
	f.String("inventory", "", "Read installed packages from a saved pip freeze file")
	f.Duration("timeout", 0, "Limit for the pip command (0 = no limit)")
	f.String("manifest", d.Manifest, "Manifest file name inside the scanned folder")
	f.String("log-file", d.LogFile, "Log file path (overwritten each run)")
	f.String("summary", d.Summary, "Print a summary: none, table, json")
	f.BoolP("yes", "y", false, "Overwrite an existing manifest without asking")
	f.Bool("dry-run", false, "Print the manifest instead of writing it")

	return cmd
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0], cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	return Run(cmd.Context(), cfg, Options{
		Logger: logger,
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
	})
}

// Options carries the collaborators of a run. Zero fields get defaults:
// a discarding logger, standard streams, and a prompt on In.
type Options struct {
	Logger    *slog.Logger
	Inventory inventory.Provider // nil selects one from the config
	Confirmer manifest.Confirmer
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Confirmer == nil {
		o.Confirmer = &manifest.Prompt{In: o.In, Out: o.Out}
	}
}

// Run executes the whole pipeline for cfg
func Run(ctx context.Context, cfg *models.Config, opts Options) error {
	opts.setDefaults()

	for _, w := range cfg.Warnings {
		opts.Logger.Warn(w)
		color.New(color.FgYellow).Fprintln(opts.Err, "Warning:", w)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	inv := opts.Inventory
	if inv == nil {
		var err error
		if inv, err = newInventory(cfg, opts.Logger); err != nil {
			return err
		}
	}

	result, err := scanner.New(cfg, inv, opts.Logger).Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if rep := reporter.Get(cfg.Summary); rep != nil {
		output, err := rep.Report(result)
		if err != nil {
			return fmt.Errorf("failed to generate summary: %w", err)
		}
		fmt.Fprintln(opts.Err, string(output))
	}

	entries := result.Entries()
	if cfg.DryRun {
		_, err := opts.Out.Write(manifest.Render(entries))
		return err
	}

	confirmer := opts.Confirmer
	if cfg.Yes {
		confirmer = manifest.AlwaysConfirm
	}

	w := &manifest.Writer{
		Confirmer: confirmer,
		Logger:    opts.Logger,
		Out:       opts.Out,
		Err:       opts.Err,
	}
	err = w.Write(filepath.Join(cfg.Root, cfg.Manifest), entries)
	if errors.Is(err, manifest.ErrDeclined) {
		return nil
	}
	return err
}

func newInventory(cfg *models.Config, logger *slog.Logger) (inventory.Provider, error) {
	if cfg.InventoryFile == "" {
		return inventory.NewPipFreeze(cfg.PipCommand, logger), nil
	}

	inv, err := inventory.FromFile(cfg.InventoryFile)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("%s lists %d packages", cfg.InventoryFile, len(inv)))
	return inv, nil
}
