package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/config"
	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
	"github.com/MrLemonHog/nylium-wiki-page/internal/storage"
	"github.com/MrLemonHog/nylium-wiki-page/internal/wiki"
)

var importCmd = &cobra.Command{
	Use:   "import [items.json]",
	Short: "Load a generated catalogue into the SQLite store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemsFile := config.C.OutputFile
		if len(args) == 1 {
			itemsFile = args[0]
		}

		store, err := storage.New(config.C.Storage.DB)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "open store")
		}
		defer store.Close()

		if err := wiki.Import(store, itemsFile); err != nil {
			return err
		}

		categories, err := store.GetCategories()
		if err != nil {
			return err
		}
		log.Stdout.Success("Imported %s into %s", itemsFile, config.C.Storage.DB)
		for _, c := range categories {
			log.Stdout.Muted("%-10s %d", c.Name, c.ItemCount)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("db", "", "SQLite database path")
	viper.BindPFlag("storage.db", importCmd.Flags().Lookup("db"))
}
