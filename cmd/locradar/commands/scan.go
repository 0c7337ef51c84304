// Package commands implements CLI command handlers for locradar.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locradar/internal/observability"
	"github.com/Sumatoshi-tech/locradar/pkg/config"
	"github.com/Sumatoshi-tech/locradar/pkg/identity"
	"github.com/Sumatoshi-tech/locradar/pkg/langcatalog"
	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
	"github.com/Sumatoshi-tech/locradar/pkg/oracle"
	"github.com/Sumatoshi-tech/locradar/pkg/render"
	"github.com/Sumatoshi-tech/locradar/pkg/scanner"
	"github.com/Sumatoshi-tech/locradar/pkg/version"
	"github.com/Sumatoshi-tech/locradar/pkg/walker"
)

// msgNothingToRender is printed when no language has attributed lines.
const msgNothingToRender = "nothing to render"

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type oracleFactory func(backend, gitBinary string) (oracle.Oracle, error)

type telemetryInit func(cfg observability.Config) (observability.Providers, error)

// scanDeps are the collaborators a scan reaches outside the process.
type scanDeps struct {
	newOracle      oracleFactory
	lookupIdentity func() (string, error)
	initTelemetry  telemetryInit
	newRunID       func() string
	dotEnvFile     string
}

func defaultScanDeps() scanDeps {
	return scanDeps{
		newOracle: oracle.New,
		lookupIdentity: func() (string, error) {
			return identity.GlobalUserName(identity.GlobalConfigPaths()...)
		},
		initTelemetry: observability.Init,
		newRunID:      uuid.NewString,
		dotEnvFile:    config.DotEnvFile,
	}
}

// ScanCommand holds flag values and dependencies for the scan command.
type ScanCommand struct {
	configPath   string
	path         string
	depth        int
	authors      []string
	topN         int
	workers      int
	backend      string
	catalog      string
	catalogFile  string
	svg          string
	html         string
	format       string
	skipVendored bool
	noColor      bool

	deps scanDeps
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	return newScanCommandWithDeps(defaultScanDeps())
}

func newScanCommandWithDeps(deps scanDeps) *cobra.Command {
	sc := &ScanCommand{deps: deps}

	cobraCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree and chart attributed lines per language",
		Long: `Scan walks path (default: the working directory), scans every git
repository it finds and counts the current lines whose blamed author is one
of --author. Only programming languages are counted.

The top languages are written as an SVG radar chart and printed as a table.

Examples:
  locradar scan ~/src
  locradar scan -a "Ada Lovelace" -a ada --depth 3 ~/src
  locradar scan --html radar.html --format json .`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&sc.configPath, "config", "", "Config file (default: .locradar.yaml in the working directory or $HOME)")
	flags.StringVarP(&sc.path, "path", "p", config.DefaultScanPath, "Directory to scan")
	flags.IntVarP(&sc.depth, "depth", "d", config.DefaultScanMaxDepth, "Deepest directory level to visit below path (-1: unlimited)")
	flags.StringSliceVarP(&sc.authors, "author", "a", nil, "Author name to attribute lines to (repeatable; default: git config --global user.name)")
	flags.IntVarP(&sc.topN, "top-n", "t", config.DefaultScanTopN, "Number of languages to chart")
	flags.IntVar(&sc.workers, "workers", config.DefaultScanWorkers, "Concurrent blame calls per repository (0: one per CPU)")
	flags.StringVar(&sc.backend, "backend", config.DefaultBackendKind, "Git backend: exec or libgit2")
	flags.StringVar(&sc.catalog, "catalog", config.DefaultCatalogSource, "Language catalog: bundled or linguist")
	flags.StringVar(&sc.catalogFile, "catalog-file", config.DefaultCatalogFile, "Extra catalog records (.json or .yaml) loaded on top")
	flags.StringVar(&sc.svg, "svg", config.DefaultOutputSVG, "SVG chart output path (empty: skip)")
	flags.StringVar(&sc.html, "html", config.DefaultOutputHTML, "Interactive HTML chart output path")
	flags.StringVar(&sc.format, "format", config.DefaultOutputFormat, "Summary format: text, json or yaml")
	flags.BoolVar(&sc.skipVendored, "skip-vendored", config.DefaultScanSkipVendored, "Ignore vendored third-party paths")
	flags.BoolVar(&sc.noColor, "no-color", config.DefaultOutputNoColor, "Disable colored output")

	return cobraCmd
}

// applyFlags copies explicitly set flags over the loaded configuration.
func (sc *ScanCommand) applyFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("path") {
		cfg.Scan.Path = sc.path
	}

	if len(args) > 0 {
		cfg.Scan.Path = args[0]
	}

	if flags.Changed("depth") {
		cfg.Scan.MaxDepth = sc.depth
	}

	if flags.Changed("author") {
		cfg.Scan.Authors = sc.authors

		// --author "" parses to no names; keep it explicit so it is rejected.
		if len(sc.authors) == 0 {
			cfg.Scan.Authors = []string{""}
		}
	}

	if flags.Changed("top-n") {
		cfg.Scan.TopN = sc.topN
	}

	if flags.Changed("workers") {
		cfg.Scan.Workers = sc.workers
	}

	if flags.Changed("skip-vendored") {
		cfg.Scan.SkipVendored = sc.skipVendored
	}

	if flags.Changed("backend") {
		cfg.Backend.Kind = sc.backend
	}

	if flags.Changed("catalog") {
		cfg.Catalog.Source = sc.catalog
	}

	if flags.Changed("catalog-file") {
		cfg.Catalog.File = sc.catalogFile
	}

	if flags.Changed("svg") {
		cfg.Output.SVG = sc.svg
	}

	if flags.Changed("html") {
		cfg.Output.HTML = sc.html
	}

	if flags.Changed("format") {
		cfg.Output.Format = sc.format
	}

	if flags.Changed("no-color") {
		cfg.Output.NoColor = sc.noColor
	}
}

func (sc *ScanCommand) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	if sc.deps.dotEnvFile != "" {
		if err := config.LoadDotEnv(sc.deps.dotEnvFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return nil, err
	}

	sc.applyFlags(cmd, args, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func telemetryConfig(cfg *config.Config, stderr io.Writer) (observability.Config, error) {
	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.LogOutput = stderr

	return obsCfg, nil
}

func (sc *ScanCommand) run(cmd *cobra.Command, args []string) (retErr error) {
	cfg, err := sc.loadConfig(cmd, args)
	if err != nil {
		return err
	}

	obsCfg, err := telemetryConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	providers, err := sc.deps.initTelemetry(obsCfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	defer func() {
		retErr = errors.Join(retErr, providers.Shutdown(context.WithoutCancel(cmd.Context())))
	}()

	logger := providers.Logger.With(observability.AttrRunID, sc.deps.newRunID())

	authors, err := identity.Resolve(cfg.Scan.Authors, sc.deps.lookupIdentity)
	if err != nil {
		return err
	}

	counts, err := sc.scan(cmd.Context(), cfg, authors, providers, logger)
	if err != nil {
		return err
	}

	return sc.report(cmd.OutOrStdout(), cfg, authors, counts, logger)
}

func (sc *ScanCommand) scan(
	ctx context.Context,
	cfg *config.Config,
	authors identity.AuthorSet,
	providers observability.Providers,
	logger *slog.Logger,
) (linecount.Counts, error) {
	catalog, err := langcatalog.Load(cfg.Catalog.Source, cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load language catalog: %w", err)
	}

	backend, err := sc.deps.newOracle(cfg.Backend.Kind, cfg.Backend.GitBinary)
	if err != nil {
		return nil, err
	}

	if closer, ok := backend.(oracle.Closer); ok {
		defer closer.Close()
	}

	metrics, err := observability.NewScanMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	repoScanner := scanner.New(backend, catalog)
	repoScanner.Logger = logger
	repoScanner.Tracer = providers.Tracer
	repoScanner.Metrics = metrics
	repoScanner.Workers = cfg.Scan.Workers
	repoScanner.SkipVendored = cfg.Scan.SkipVendored

	treeWalker := walker.New(repoScanner)
	treeWalker.MaxDepth = cfg.Scan.MaxDepth
	treeWalker.Logger = logger

	logger.InfoContext(ctx, "scan started",
		"path", cfg.Scan.Path,
		"authors", authors.String(),
		"max_depth", cfg.Scan.MaxDepth,
		"backend", cfg.Backend.Kind,
		"catalog", cfg.Catalog.Source,
	)

	ctx, span := providers.Tracer.Start(ctx, "locradar.scan")
	defer span.End()

	counts, err := treeWalker.Walk(ctx, cfg.Scan.Path, authors)
	if err != nil {
		observability.RecordSpanError(span, err)

		return nil, err
	}

	logger.InfoContext(ctx, "scan finished", "languages", len(counts), "lines", counts.Total())

	return counts, nil
}

func (sc *ScanCommand) report(
	out io.Writer,
	cfg *config.Config,
	authors identity.AuthorSet,
	counts linecount.Counts,
	logger *slog.Logger,
) error {
	top := linecount.Top(counts, cfg.Scan.TopN)

	if cfg.Output.Format != formatText {
		if err := writeStructured(out, cfg, authors, counts, top); err != nil {
			return err
		}
	}

	if len(top) == 0 {
		if cfg.Output.Format == formatText {
			fmt.Fprintln(out, msgNothingToRender)
		} else {
			logger.Warn(msgNothingToRender)
		}

		return nil
	}

	chartOpts := render.ChartOptions{
		Subtitle: "authors: " + authors.String(),
		Width:    cfg.Output.Width,
		Height:   cfg.Output.Height,
		Theme:    render.Theme(cfg.Output.Theme),
	}

	if cfg.Output.SVG != "" {
		if err := writeFile(cfg.Output.SVG, func(w io.Writer) error {
			return render.WriteRadarSVG(w, top, chartOpts)
		}); err != nil {
			return err
		}

		logger.Info("chart written", "path", cfg.Output.SVG)
	}

	if cfg.Output.HTML != "" {
		if err := writeFile(cfg.Output.HTML, func(w io.Writer) error {
			return render.WriteRadarHTML(w, top, chartOpts)
		}); err != nil {
			return err
		}

		logger.Info("chart written", "path", cfg.Output.HTML)
	}

	if cfg.Output.Format != formatText {
		return nil
	}

	return render.WriteTable(out, top, counts.Total(), render.TableOptions{
		Heading: fmt.Sprintf("Top %d languages for %s", len(top), authors.String()),
		NoColor: cfg.Output.NoColor,
	})
}

func writeStructured(
	out io.Writer,
	cfg *config.Config,
	authors identity.AuthorSet,
	counts linecount.Counts,
	top []linecount.Entry,
) error {
	report := render.NewReport(cfg.Scan.Path, authors.Names(), counts, top)

	switch strings.ToLower(cfg.Output.Format) {
	case formatJSON:
		return render.WriteJSON(out, report)
	case formatYAML:
		return render.WriteYAML(out, report)
	default:
		return fmt.Errorf("%w: unsupported format %q", config.ErrInvalidConfig, cfg.Output.Format)
	}
}

// writeFile replaces path with what write produces.
func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writeErr := write(f)
	closeErr := f.Close()

	if err := errors.Join(writeErr, closeErr); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
