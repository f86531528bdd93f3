package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crewlint/crewlint/internal/config"
	"github.com/crewlint/crewlint/internal/lint"
	"github.com/crewlint/crewlint/internal/schema"
	"github.com/crewlint/crewlint/internal/version"
)

// appOptions holds the global flag values shared by every command.
type appOptions struct {
	configPath    string
	schemaVersion string
	format        string
	debug         bool
	noColor       bool
}

func optionsFromFlags(cmd *cobra.Command) appOptions {
	var opts appOptions
	opts.configPath, _ = cmd.Flags().GetString("config")
	opts.schemaVersion, _ = cmd.Flags().GetString("schema-version")
	opts.format, _ = cmd.Flags().GetString("format")
	opts.debug, _ = cmd.Flags().GetBool("debug")
	opts.noColor, _ = cmd.Flags().GetBool("no-color")
	return opts
}

// app is the wired environment a command runs in.
type app struct {
	cfg      *config.Configuration
	logger   *zap.Logger
	registry *schema.Registry
	linter   *lint.Linter
	out      io.Writer
	errOut   io.Writer
	opts     appOptions
}

// newApp loads configuration, builds the logger and registers the built-in
// schemas. Configuration failures are reported on errOut and returned as
// ExitConfigError.
func newApp(opts appOptions, out, errOut io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(errOut, "Error loading config: %v\n", err)
		return nil, NewExitError(ExitConfigError)
	}
	if opts.format != "" {
		if opts.format != "text" && opts.format != "json" {
			fmt.Fprintf(errOut, "Error: invalid format %q (must be text or json)\n", opts.format)
			return nil, NewExitError(ExitInvalidArguments)
		}
		cfg.Format = opts.format
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	if opts.noColor || !cfg.Color {
		color.NoColor = true
	}

	logger, err := newLogger(cfg.LogLevel, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "Error creating logger: %v\n", err)
		return nil, NewExitError(ExitConfigError)
	}

	registry := schema.NewRegistry(schema.WithLogger(logger))
	schema.LoadBuiltin(registry)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		linter:   lint.New(registry, lint.WithLogger(logger)),
		out:      out,
		errOut:   errOut,
		opts:     opts,
	}, nil
}

// newLogger builds a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

// selectVersion picks the schema version: the --schema-version flag, then the
// schema_version setting, then detection in projectRoot. It prints the
// compatibility notice for a pinned version and returns the version of the schema
// that will actually be used.
func (a *app) selectVersion(ctx context.Context, projectRoot string) string {
	requested := a.opts.schemaVersion
	if requested == "" {
		requested = a.cfg.SchemaVersion
	}
	if requested == "" {
		if projectRoot == "" {
			projectRoot = "."
		}
		requested = version.NewDetector(a.logger).Detect(ctx, projectRoot)
	}
	a.registry.SetCurrentVersion(requested)

	resolved := requested
	if current, ok := a.registry.CurrentSchema(); ok {
		resolved = current.Version
	}
	if requested != resolved {
		a.logger.Debug("using schema",
			zap.String("requested", requested),
			zap.String("version", resolved))
	}

	if requested != schema.LatestAlias {
		a.printNotice(requested, resolved)
	}
	return resolved
}

// printNotice reports an unsupported requested version as a warning. A newer
// version is reported with the schema that is really used, naming the fallback
// when no schema exists for the requested release.
func (a *app) printNotice(requested, resolved string) {
	notice := version.CheckCompatibility(requested)
	switch notice.Level {
	case version.NoticeWarning:
		fmt.Fprintf(a.errOut, "%s %s\n", color.YellowString("!"), notice.Message)
	case version.NoticeInfo:
		if version.Normalize(requested) != resolved {
			fmt.Fprintf(a.errOut, "Using CrewAI schema version %s (no schema for %s)\n", resolved, requested)
			return
		}
		fmt.Fprintln(a.errOut, notice.Message)
	}
}

// close flushes the logger.
func (a *app) close() {
	_ = a.logger.Sync()
}

func readDocument(path string) (lint.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return lint.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return lint.Document{Path: path, Text: string(content)}, nil
}
