package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"acadreports/internal/config"
	"acadreports/internal/dataprocessing"
	"acadreports/internal/exporter"
	"acadreports/internal/infrastructure"
	"acadreports/internal/reports"
	"acadreports/internal/validation"
	"acadreports/pkg/contracts/domain"
)

const formatJSON = "json"

// options are the parsed command line flags
type options struct {
	File    string
	Kind    string
	Period  string
	Out     string
	Format  string
	Verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.File, "file", "", "spreadsheet to read (.xlsx, .xls or .csv)")
	fs.StringVar(&opts.Kind, "type", "", "report type: "+kindList())
	fs.StringVar(&opts.Period, "period", "month", "homework period: month, week or day")
	fs.StringVar(&opts.Out, "out", "", "output file; stdout when empty")
	fs.StringVar(&opts.Format, "format", formatJSON, "output format: json, csv or xlsx")
	fs.BoolVar(&opts.Verbose, "v", false, "log the column resolution trace")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.File == "" {
		return opts, errors.New("-file is required")
	}
	if opts.Kind == "" {
		return opts, errors.New("-type is required")
	}
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format == string(exporter.FormatXLSX) && opts.Out == "" {
		return opts, errors.New("-out is required for xlsx output")
	}
	return opts, nil
}

func kindList() string {
	names := make([]string, 0, len(domain.ReportKinds))
	for _, k := range domain.ReportKinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func run(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) error {
	kind, err := reports.ParseKind(opts.Kind)
	if err != nil {
		return err
	}
	var period domain.Period
	if kind.AcceptsPeriod() {
		if period, err = reports.ParsePeriod(opts.Period); err != nil {
			return err
		}
	}

	validator := validation.NewFileValidator(logger, 0)
	if err := validator.ValidateFile(opts.File); err != nil {
		return err
	}

	t, err := dataprocessing.NewParser(logger).ParseFile(ctx, opts.File)
	if err != nil {
		return err
	}

	result, trace, err := reports.Extract(kind, t, reports.Options{Period: period})
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "report extracted", slog.Any("trace", trace))
	logger.InfoContext(ctx, "report extracted",
		slog.String("file", opts.File),
		slog.String("report_type", string(kind)),
		slog.Int("records", result.Count()),
		slog.String("summary", result.Summary()),
	)

	if opts.Format == formatJSON {
		return writeJSON(opts.Out, stdout, result)
	}

	format, err := exporter.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Out == "" {
		return exporter.Export(stdout, result, format)
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(opts.Out)); err != nil {
		return err
	}
	return exporter.ExportFile(opts.Out, result, format)
}

func writeJSON(out string, stdout io.Writer, result domain.Report) error {
	if out == "" {
		return encodeJSON(stdout, result)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := encodeJSON(f, result); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}

func encodeJSON(w io.Writer, result domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logCfg := config.Default().Logging
	logCfg.Format = "text"
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	logger, err := infrastructure.NewLogger(logCfg, os.Stderr)
	if err != nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = infrastructure.EnsureTraceID(ctx)

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
