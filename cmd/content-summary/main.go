package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"greg-hacke/go-imagedb/config"
	"greg-hacke/go-imagedb/scan"
	"greg-hacke/go-imagedb/summary"
)

var (
	configPath string
	output     string
	baseURL    string
	withDumps  bool

	colorRed    = color.New(color.FgRed, color.Bold)
	colorGreen  = color.New(color.FgGreen)
	colorYellow = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "content-summary [dir]",
	Short: "Scan a directory of images and build a metadata summary report",
	Long: `content-summary walks a directory tree, extracts EXIF metadata from
every image it finds, and writes a markdown report (ContentSummary.md)
grouping files by type with manufacturer, model, version, makernote and
thumbnail columns.

With --dumps, a per-file metadata listing is written to a metadata/
subdirectory next to each image, matching the report's "All Data" links.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags override file and environment configuration
	if len(args) > 0 {
		cfg.Scan.Root = args[0]
	}
	if cmd.Flags().Changed("output") {
		cfg.Report.Output = output
	}
	if cmd.Flags().Changed("base-url") {
		cfg.Report.BaseURL = baseURL
	}
	if cmd.Flags().Changed("dumps") {
		cfg.Dump.Enabled = withDumps
	}

	report := summary.NewReport(cfg.Report.BaseURL)
	handlers := []scan.Handler{scan.NewSummaryHandler(report, cfg.Report.Output)}
	if cfg.Dump.Enabled {
		handlers = append(handlers, scan.NewDumpHandler())
	}

	scanner := &scan.Scanner{Root: cfg.Scan.Root, Handlers: handlers}
	stats, err := scanner.Run()
	for _, fileErr := range stats.Errors {
		colorYellow.Fprintf(os.Stderr, "warning: %v\n", fileErr)
	}
	if err != nil {
		return err
	}

	colorGreen.Printf("Processed %d of %d files (%d skipped, %d errors) -> %s\n",
		stats.FilesProcessed, stats.FilesScanned, stats.FilesSkipped,
		len(stats.Errors), cfg.Report.Output)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		colorRed.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./imagedb.yaml if present)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "ContentSummary.md", "Report output path")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL prefixed to report links (empty: relative links)")
	rootCmd.Flags().BoolVar(&withDumps, "dumps", false, "Write per-file metadata dumps next to each image")
}
