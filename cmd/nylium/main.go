package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/config"
	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

var version = "0.3.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "nylium",
	Short: "Item catalogue generator and wiki tooling",
	Long: `Builds items.json from Nexo item definitions, renders item icons
in a browser and serves the wiki page.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(buildCmd, renderCmd, importCmd, serveCmd, wikiCmd)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./nylium.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := config.Init(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log.SetLevel(config.C.Log.Level)
	if config.C.Log.File != "" {
		if err := log.SetFileOutput(config.C.Log.File); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		}
	}
	if used := config.Used(); used != "" {
		log.Debug("config loaded", "file", used)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !errors.IsCanceled(err) {
		log.Debug("command failed", "error", err, "meta", errors.GetMeta(err))
		log.Stdout.Fail("Error: %s", errors.GetMessageChain(err))
	}
	log.Close()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.IsCanceled(err):
		return 130
	case errors.IsInvalidArgument(err):
		return 2
	default:
		return 1
	}
}
