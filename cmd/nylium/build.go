package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/catalog"
	"github.com/MrLemonHog/nylium-wiki-page/internal/config"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate items.json from the item definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(log.Stdout)
		return err
	},
}

func init() {
	buildCmd.Flags().String("source", "", "Directory with item YAML files")
	buildCmd.Flags().StringP("output", "o", "", "Output JSON file")
	viper.BindPFlag("source_dir", buildCmd.Flags().Lookup("source"))
	viper.BindPFlag("output_file", buildCmd.Flags().Lookup("output"))
}

// runBuild generates the catalogue. Only a missing source directory or an
// unwritable output file is an error.
func runBuild(console *log.Console) (catalog.Report, error) {
	cfg := config.C
	builder := catalog.NewBuilder(cfg.Categories, catalog.NewResolver(cfg.AssetsRoot))

	cat, report, err := builder.Build(cfg.SourceDir)
	if err != nil {
		return report, err
	}
	if err := catalog.WriteFile(cfg.OutputFile, cat); err != nil {
		return report, err
	}

	console.Success("Generated %s (%d categories)", cfg.OutputFile, len(cat.Categories()))
	printReport(console, report)
	return report, nil
}

func printReport(console *log.Console, report catalog.Report) {
	console.Muted("%d files, %d items, %d skipped", report.Files, report.Items, report.SkippedTotal())
	for _, reason := range report.SkipReasons() {
		console.Warn("skipped %d entries: %s", report.Skipped[reason], reason)
	}
	for _, failed := range report.Failed {
		console.Warn("failed to read %s: %v", failed.File, failed.Err)
	}
	if n := len(report.UnresolvedModels); n > 0 {
		console.Muted("%d models without texture or parent", n)
	}
	if n := len(report.Dropped); n > 0 {
		console.Warn("dropped %d items without a category: %v", n, report.Dropped)
	}
}
