package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/config"
	"github.com/MrLemonHog/nylium-wiki-page/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render item icons in the browser and save them next to the assets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context())
	},
}

func init() {
	renderCmd.Flags().Int("port", 0, "Render server port")
	renderCmd.Flags().String("browser", "", "Browser mode: system, headless, none")
	renderCmd.Flags().Duration("timeout", 0, "Give up after this long (0 waits forever)")
	viper.BindPFlag("render.port", renderCmd.Flags().Lookup("port"))
	viper.BindPFlag("render.browser", renderCmd.Flags().Lookup("browser"))
	viper.BindPFlag("render.timeout", renderCmd.Flags().Lookup("timeout"))
}

func runRender(ctx context.Context) error {
	cfg := config.C

	launcher, err := render.NewLauncher(cfg.Render.Browser)
	if err != nil {
		return err
	}

	session := render.NewSession(render.SessionConfig{
		Port:          cfg.Render.Port,
		ItemsFile:     cfg.OutputFile,
		AssetsRoot:    cfg.AssetsRoot,
		OutputDir:     cfg.Render.OutputDir,
		PagePath:      cfg.Render.Page,
		IconSize:      cfg.Render.IconSize,
		Timeout:       cfg.Render.Timeout,
		ShutdownDelay: cfg.Render.ShutdownDelay,
	}, launcher)

	return session.Run(ctx)
}
