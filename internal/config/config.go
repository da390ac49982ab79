package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// Config holds the application configuration
type Config struct {
	SourceDir  string        `mapstructure:"source_dir"`
	OutputFile string        `mapstructure:"output_file"`
	AssetsRoot string        `mapstructure:"assets_root"`
	Categories []string      `mapstructure:"categories"`
	Render     RenderConfig  `mapstructure:"render"`
	Wiki       WikiConfig    `mapstructure:"wiki"`
	Storage    StorageConfig `mapstructure:"storage"`
	Log        LogConfig     `mapstructure:"log"`
}

type RenderConfig struct {
	Port          int           `mapstructure:"port"`
	OutputDir     string        `mapstructure:"output_dir"`
	Page          string        `mapstructure:"page"`
	Browser       string        `mapstructure:"browser"` // system, headless or none
	Timeout       time.Duration `mapstructure:"timeout"`
	IconSize      int           `mapstructure:"icon_size"`
	ShutdownDelay time.Duration `mapstructure:"shutdown_delay"`
}

type WikiConfig struct {
	Port      int           `mapstructure:"port"`
	Page      string        `mapstructure:"page"`
	Root      string        `mapstructure:"root"`
	OpenDelay time.Duration `mapstructure:"open_delay"`
}

type StorageConfig struct {
	DB string `mapstructure:"db"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// C is the global config instance
var C Config

// SetDefaults registers the default of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source_dir", "nexo-items")
	v.SetDefault("output_file", "items.json")
	v.SetDefault("assets_root", ".")
	v.SetDefault("categories", models.RequiredCategories())

	v.SetDefault("render.port", 8090)
	v.SetDefault("render.output_dir", "assets/renders")
	v.SetDefault("render.page", "render_tool.html")
	v.SetDefault("render.browser", "system")
	v.SetDefault("render.timeout", time.Duration(0))
	v.SetDefault("render.icon_size", 0)
	v.SetDefault("render.shutdown_delay", 2*time.Second)

	v.SetDefault("wiki.port", 8000)
	v.SetDefault("wiki.page", "wiki-copy.html")
	v.SetDefault("wiki.root", ".")
	v.SetDefault("wiki.open_delay", time.Second)

	v.SetDefault("storage.db", "nylium.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Init loads .env, the config file and NYLIUM_* environment variables into
// C. configFile overrides the search for nylium.yaml.
func Init(configFile string) error {
	// a missing .env is fine
	_ = godotenv.Load(".env")

	return Load(viper.GetViper(), configFile, &C)
}

// Load reads configuration through v into cfg
func Load(v *viper.Viper, configFile string, cfg *Config) error {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nylium")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "nylium"))
		}
	}

	v.SetEnvPrefix("NYLIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// only an explicitly named file has to exist
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return err
		}
	}

	return v.Unmarshal(cfg)
}

// Used returns the config file in use, if any
func Used() string {
	return viper.ConfigFileUsed()
}
