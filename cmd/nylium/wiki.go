package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
	"github.com/MrLemonHog/nylium-wiki-page/internal/wiki"
)

var wikiCmd = &cobra.Command{
	Use:   "wiki",
	Short: "Generate the catalogue, render icons and serve the wiki",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newWikiPipeline(viper.GetBool("wiki.skip_render")).Run(cmd.Context())
	},
}

func init() {
	wikiCmd.Flags().Bool("skip-render", false, "Skip the icon render step")
	viper.BindPFlag("wiki.skip_render", wikiCmd.Flags().Lookup("skip-render"))
}

func newWikiPipeline(skipRender bool) *wiki.Pipeline {
	steps := []wiki.Step{{
		Name: "Generator",
		Run: func(ctx context.Context) error {
			_, err := runBuild(log.Stdout)
			return err
		},
	}}
	if !skipRender {
		steps = append(steps, wiki.Step{Name: "Renderer", Run: runRender})
	}
	steps = append(steps, wiki.Step{Name: "Server", Run: runServe})
	return &wiki.Pipeline{Steps: steps}
}
