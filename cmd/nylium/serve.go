package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/config"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
	"github.com/MrLemonHog/nylium-wiki-page/internal/render"
	"github.com/MrLemonHog/nylium-wiki-page/internal/wiki"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wiki page and the catalogue API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Wiki server port")
	serveCmd.Flags().Bool("no-browser", false, "Do not open the page")
	viper.BindPFlag("wiki.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("wiki.no_browser", serveCmd.Flags().Lookup("no-browser"))
}

func runServe(ctx context.Context) error {
	cfg := config.C

	var launcher render.Launcher = render.SystemLauncher{}
	if viper.GetBool("wiki.no_browser") {
		launcher = render.NoopLauncher{}
	}

	return wiki.Serve(ctx, wiki.ServeConfig{
		Port:      cfg.Wiki.Port,
		Root:      cfg.Wiki.Root,
		Page:      cfg.Wiki.Page,
		ItemsFile: cfg.OutputFile,
		DBPath:    cfg.Storage.DB,
		OpenDelay: cfg.Wiki.OpenDelay,
		Launcher:  launcher,
		Ready: func(url string) {
			log.Stdout.Success("Wiki running at %s", url)
			log.Stdout.Muted("Press Ctrl+C to stop")
		},
	})
}
