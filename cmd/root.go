package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/feed"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/market"
	"github.com/spigell/resume-matcher/internal/server"
)

const (
	app       = "resume-matcher"
	envPrefix = "RESUME_MATCHER"
)

type Config struct {
	Market market.Config  `mapstructure:"market"`
	Server server.Config  `mapstructure:"server"`
	Feed   feed.Config    `mapstructure:"feed"`
	Rank   RankConfig     `mapstructure:"rank"`
	Roles  map[string]any `mapstructure:"roles"`
	AI     *AIConfig      `mapstructure:"ai"`
}

type RankConfig struct {
	ExcludeFile      string   `mapstructure:"exclude_file"`
	MinimumScore     int      `mapstructure:"minimum_score" validate:"gte=0,lte=100"`
	ExcludeCompanies []string `mapstructure:"exclude_companies"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	MinimumFitScore float64       `mapstructure:"minimum_fit_score" validate:"gte=0,lte=1"`
	Instructions    string        `mapstructure:"instructions"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api_key_file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max_retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max_log_length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher scores résumés against job descriptions and ranks job postings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	def := server.DefaultConfig()
	v.SetDefault("server.address", def.Address)
	v.SetDefault("server.allow_origins", def.AllowOrigins)
	v.SetDefault("server.max_upload_bytes", def.MaxUploadBytes)
	v.SetDefault("server.read_timeout", def.ReadTimeout)
	v.SetDefault("server.write_timeout", def.WriteTimeout)

	v.SetDefault("market.ttl", market.DefaultTTL)
	v.SetDefault("market.max_entries", market.DefaultMaxEntries)

	v.SetDefault("feed.per_page", 100)
	v.SetDefault("feed.timeout", 10*time.Second)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.max_retries", 3)
	v.SetDefault("ai.gemini.max_log_length", 300)
}

func initConfig() {
	// A missing .env is fine; it only seeds the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The config file is optional unless given explicitly.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &config, nil
}

// setup builds the logger and config shared by every command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(logger.Options{
		App:   app,
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}
