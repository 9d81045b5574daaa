// Command calcreport renders a calculation described in YAML as a PDF.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/laurentmuller/calculation-sub010/chart"
	"github.com/laurentmuller/calculation-sub010/config"
	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/imaging"
	"github.com/laurentmuller/calculation-sub010/observability"
	"github.com/laurentmuller/calculation-sub010/report"
	"github.com/laurentmuller/calculation-sub010/table"
	"github.com/laurentmuller/calculation-sub010/translate"
)

var (
	errUsage    = errors.New("usage")
	errTerminal = errors.New("refusing to write a PDF to a terminal, use -out")
)

type options struct {
	configPath   string
	inPath       string
	outPath      string
	lang         string
	messagesPath string
	logo         string
	logLevel     string
	index        bool
	validate     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "calcreport: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("calcreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: calcreport [flags] -in calculation.yaml\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.inPath, "in", "", "YAML calculation file, - for stdin")
	fs.StringVar(&opts.outPath, "out", "", "PDF output file (default stdout)")
	fs.StringVar(&opts.lang, "lang", "", "Report language, overrides the configured locale")
	fs.StringVar(&opts.messagesPath, "messages", "", "YAML message catalog replacing the built-in one")
	fs.StringVar(&opts.logo, "logo", "", "Logo image file or http(s) URL")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level, overrides the configured level")
	fs.BoolVar(&opts.index, "index", false, "Append an index page of the bookmarks")
	fs.BoolVar(&opts.validate, "validate", false, "Validate the generated PDF with pdfcpu")
	if err := fs.Parse(args); err != nil {
		return options{}, errUsage
	}
	if opts.inPath == "" {
		fs.Usage()
		return options{}, fmt.Errorf("%w: missing -in", errUsage)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg := config.Default()
	if opts.configPath != "" {
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.lang != "" {
		cfg.Locale = opts.lang
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.TimeOnly}).
		Level(cfg.LogLevel()).With().Timestamp().Logger()
	logger := observability.NewZerolog(zl)

	calc, err := readCalculation(opts.inPath, stdin)
	if err != nil {
		return err
	}
	ropts, err := reportOptions(ctx, cfg, opts)
	if err != nil {
		return err
	}

	docOpts := append(cfg.DocumentOptions(), document.WithLogger(logger))
	d := document.New(docOpts...)
	if err := report.Render(d, calc, ropts); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := d.OutputContext(ctx, &buf); err != nil {
		return err
	}
	if opts.validate {
		if err := validatePDF(buf.Bytes()); err != nil {
			return err
		}
		logger.Info("pdf validated", observability.Int("bytes", buf.Len()))
	}
	if err := writeOutput(opts.outPath, stdout, buf.Bytes()); err != nil {
		return err
	}
	logger.Info("report written",
		observability.String("out", opts.outPath),
		observability.Int("pages", d.PageCount()),
		observability.Int("bytes", buf.Len()))
	return nil
}

func readCalculation(path string, stdin io.Reader) (*report.Calculation, error) {
	if path != "-" {
		return report.LoadCalculation(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return report.ParseCalculation(data)
}

func reportOptions(ctx context.Context, cfg *config.Config, opts options) (report.Options, error) {
	ro := report.DefaultOptions()
	catalog, err := report.Messages()
	if opts.messagesPath != "" {
		catalog, err = translate.Load(opts.messagesPath)
	}
	if err != nil {
		return ro, err
	}
	tr := catalog.Translator(cfg.Locale)
	ro.Translator = tr
	ro.Formatter = table.NewFormatter(cfg.Language())
	ro.Font = cfg.BodyFont()
	ro.Index = opts.index || cfg.Index.Enabled
	if cfg.Index.Title != "" {
		ro.IndexOpts.Title = cfg.Index.Title
	}
	ro.IndexOpts.Separator = cfg.IndexSeparator()
	if cfg.Chart.BarHeight > 0 {
		ro.BarHeight = cfg.Chart.BarHeight
	}
	if cfg.Chart.AxisScript != "" {
		if ro.AxisFormatter, err = chart.ScriptFormatter(cfg.Chart.AxisScript); err != nil {
			return ro, fmt.Errorf("axis script: %w", err)
		}
	}
	if opts.logo != "" {
		if ro.Logo, err = imaging.Load(ctx, opts.logo); err != nil {
			return ro, err
		}
	}
	return ro, nil
}

func validatePDF(data []byte) error {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("read generated pdf: %w", err)
	}
	if err := api.ValidateContext(pctx); err != nil {
		return fmt.Errorf("invalid generated pdf: %w", err)
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path != "" && path != "-" {
		return os.WriteFile(path, data, 0o644)
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return errTerminal
	}
	_, err := stdout.Write(data)
	return err
}
