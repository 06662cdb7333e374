package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/duckdb"
	"github.com/inodb/vibe-lint/internal/faidx"
	"github.com/inodb/vibe-lint/internal/output"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/validator"
	"github.com/inodb/vibe-lint/internal/vcf"
)

type validateOptions struct {
	reportType string
	configPath string
	lang       string
	reference  string
	buildIndex bool
	outputPath string
	dbPath     string
	failOn     string
	disable    []string
	verbose    bool
}

// validateKeys are the validate flags that can also be set through
// ~/.vibe-lint.yaml or VIBE_LINT_* variables.
var validateKeys = []string{"report-type", "config", "lang", "reference", "build-index", "output", "db", "fail-on", "disable"}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags] <file>",
		Short: "Validate a VCF file",
		Long: `Validate a plain or bgzip-compressed VCF file and write a report of every
finding. Use '-' to read from stdin.`,
		Example: `  vibe-lint validate input.vcf
  vibe-lint validate -r json -o report.json input.vcf.gz
  vibe-lint validate -f GRCh38.fa --build-index input.vcf
  vibe-lint validate --lang ja --fail-on warning input.vcf
  cat input.vcf | vibe-lint validate -`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErr("validate requires exactly one input file, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := validateOptions{
				reportType: viper.GetString("report-type"),
				configPath: viper.GetString("config"),
				lang:       viper.GetString("lang"),
				reference:  viper.GetString("reference"),
				buildIndex: viper.GetBool("build-index"),
				outputPath: viper.GetString("output"),
				dbPath:     viper.GetString("db"),
				failOn:     viper.GetString("fail-on"),
				disable:    viper.GetStringSlice("disable"),
				verbose:    viper.GetBool("verbose"),
			}
			return runValidate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("report-type", "r", "tsv", "Report format: tsv, json, markdown")
	flags.StringP("config", "c", "", "Rule configuration YAML (default: built-in rules)")
	flags.String("lang", "en", "Message language: en, ja")
	flags.StringP("reference", "f", "", "Reference FASTA with a .fai index, enables Record/MismatchReferenceBase")
	flags.Bool("build-index", false, "Build the reference .fai index before validating")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.String("db", "", "DuckDB file to record the run and its findings in")
	flags.String("fail-on", "none", "Exit with status 1 when a finding at this level or above exists: none, warning, error")
	flags.StringSlice("disable", nil, "Disable rules by name or code (repeatable)")

	for _, name := range validateKeys {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

func runValidate(ctx context.Context, stdout, stderr io.Writer, inputPath string, opts validateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	failOn, err := rule.ParseLevel(opts.failOn)
	if err != nil {
		return usageErr("--fail-on: %w", err)
	}
	if _, err := output.NewWriter(opts.reportType, io.Discard); err != nil {
		return usageErr("--report-type: %w", err)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return failErr(fmt.Errorf("create logger: %w", err))
	}
	defer logger.Sync() //nolint:errcheck

	lang := config.MatchLanguage(opts.lang)
	cfg := config.Default(lang)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath, lang)
		if err != nil {
			return failErr(err)
		}
	}
	for _, name := range opts.disable {
		s, ok := cfg.Rule(name)
		if !ok {
			return usageErr("--disable: unknown rule %q", name)
		}
		s.Enabled = false
	}

	renderer, err := cfg.Renderer()
	if err != nil {
		return failErr(err)
	}

	src, err := vcf.Open(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "Hint: Check that the file path is correct\n")
		}
		return failErr(err)
	}
	defer src.Close()

	engine := validator.NewEngine(cfg, renderer)
	engine.SetLogger(logger)
	if isTerminal(stderr) {
		engine.SetProgress(stderr)
	}

	if opts.reference != "" {
		ref, err := openReference(ctx, opts.reference, opts.buildIndex, logger, stderr)
		if err != nil {
			return failErr(err)
		}
		if ref != nil {
			defer ref.Close()
			engine.SetReference(ref)
		}
	}

	run := duckdb.NewRun(duckdb.FileFingerprint{Path: inputPath})
	if inputPath != "-" {
		if fp, err := duckdb.StatFile(inputPath); err == nil {
			run.File = fp
		}
	}

	report, err := engine.Run(src)
	if err != nil {
		return failErr(err)
	}

	if err := writeReport(stdout, opts, run.ID, report); err != nil {
		return failErr(err)
	}

	if opts.dbPath != "" {
		if err := storeRun(opts.dbPath, &run, report); err != nil {
			return failErr(err)
		}
		logger.Info("run recorded", zap.String("db", opts.dbPath), zap.String("run_id", run.ID))
	}

	if isTerminal(stderr) {
		if err := output.WriteSummary(stderr, report); err != nil {
			return failErr(err)
		}
	}

	if failOn != rule.None && report.HasAtLeast(failOn) {
		return &exitError{code: ExitError}
	}
	return nil
}

// openReference opens the FASTA at path. A failed index build is logged and
// validation continues without a reference.
func openReference(ctx context.Context, path string, build bool, logger *zap.Logger, stderr io.Writer) (*faidx.Reader, error) {
	if build {
		buildCtx, cancel := context.WithTimeout(ctx, defaultLockWait)
		defer cancel()
		if err := faidx.Build(buildCtx, path, logger); err != nil {
			logger.Error("failed to build reference index, continuing without reference",
				zap.String("path", path), zap.Error(err))
			return nil, nil
		}
	}

	ref, err := faidx.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "Hint: Build the index with --build-index or: vibe-lint faidx %s\n", path)
		}
		return nil, err
	}
	return ref, nil
}

func writeReport(stdout io.Writer, opts validateOptions, runID string, report *validator.Report) error {
	write := func(out io.Writer) error {
		w, err := output.NewWriter(opts.reportType, out)
		if err != nil {
			return err
		}
		if jw, ok := w.(*output.JSONWriter); ok {
			jw.SetRunID(runID)
		}
		return w.Write(report)
	}

	if opts.outputPath == "" {
		return write(stdout)
	}
	f, err := os.Create(opts.outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	return writeAndClose(f, write)
}

// writeAndClose runs write against wc and closes it. A close error is
// returned when write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()
	return write(wc)
}

func storeRun(path string, run *duckdb.Run, report *validator.Report) error {
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.WriteReport(run, report)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
