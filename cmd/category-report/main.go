// Command category-report transposes a category funnel export into the
// standard category report: one row per metric, one column per category,
// plus the Edu+Img sum column.
//
// Usage:
//
//	category-report <input.xlsx> [output.xlsx]
//
// When the output path is omitted the report is written next to the input
// as <input stem>_output.xlsx. An output path ending in .csv selects CSV
// output instead of a workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"funnelreport/internal/config"
	"funnelreport/internal/infrastructure"
	"funnelreport/internal/report"
	"funnelreport/internal/sink"
	"funnelreport/internal/source"
)

func main() {
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	outputPath := report.DefaultOutputPath(inputPath)
	if len(args) >= 2 {
		outputPath = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())
	profile := report.CategoryProfile()

	logger.InfoContext(ctx, "starting category report generation",
		slog.String("input", inputPath),
		slog.String("output", outputPath))

	fmt.Printf("Reading data from: %s\n", inputPath)

	src := source.NewExcelSource(logger, inputPath, profile.SourceSheet)

	var snk report.Sink
	if strings.EqualFold(filepath.Ext(outputPath), ".csv") {
		snk = sink.NewCSVSink(logger, outputPath)
	} else {
		snk = sink.NewExcelSink(logger, outputPath, profile.OutputSheet)
	}

	runner := report.NewRunner(logger, profile)
	table, err := runner.Run(ctx, src, snk)
	if err != nil {
		logger.ErrorContext(ctx, "report generation failed",
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "category report generated",
		slog.String("output", outputPath),
		slog.Int("metrics", len(table.Metrics())),
		slog.Int("columns", len(table.Columns())))

	fmt.Printf("Transformation complete: %d metrics x %d columns\n",
		len(table.Metrics()), len(table.Columns()))
	fmt.Printf("Output saved to: %s\n", outputPath)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: category-report [flags] <input_file> [output_file]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Example:")
	fmt.Fprintln(os.Stderr, "  category-report data.xlsx")
	fmt.Fprintln(os.Stderr, "  category-report data.xlsx output.xlsx")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}
