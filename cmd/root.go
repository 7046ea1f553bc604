package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/questionnaire"
)

const (
	app = "job-matcher"
)

type Config struct {
	Catalog   *CatalogConfig           `mapstructure:"catalog"`
	Match     *MatchConfig             `mapstructure:"match"`
	Filters   *FiltersConfig           `mapstructure:"filters"`
	AI        *AIConfig                `mapstructure:"ai"`
	Questions []questionnaire.Question `mapstructure:"questions"`
}

type CatalogConfig struct {
	Source    string        `mapstructure:"source"`
	UserAgent string        `mapstructure:"user-agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Dump      bool          `mapstructure:"dump"`
}

type MatchConfig struct {
	TopN       int                `mapstructure:"top-n"`
	Weights    map[string]float64 `mapstructure:"weights"`
	Unweighted bool               `mapstructure:"unweighted"`
}

type FiltersConfig struct {
	ExcludeFile string   `mapstructure:"exclude-file"`
	Companies   []string `mapstructure:"companies"`
	SkipExpired bool     `mapstructure:"skip-expired"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-matcher asks a few questions about how you like to work and finds the jobs that suit you",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("catalog.source", "JOB_MATCHER_CATALOG"); err != nil {
		log.Fatalf("binding JOB_MATCHER_CATALOG environment variable: %v", err)
	}

	viper.SetDefault("catalog.source", catalog.DefaultSource)
	viper.SetDefault("catalog.timeout", 10*time.Second)
	viper.SetDefault("match.top-n", matching.DefaultTopN)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-output", logger.DefaultOutput, "where to write logs: stderr, stdout or a file path")
	rootCmd.PersistentFlags().StringP("catalog", "c", "", "job catalog file or URL (overrides catalog.source)")
	rootCmd.PersistentFlags().Bool("dump-catalog", false, "write the filtered catalog to a temporary file")
	rootCmd.PersistentFlags().StringP("exclude-file", "e", "", "file with dismissed jobs to skip. Default is unset.")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-output", rootCmd.PersistentFlags().Lookup("log-output"))
	viper.BindPFlag("catalog.source", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("catalog.dump", rootCmd.PersistentFlags().Lookup("dump-catalog"))
	viper.BindPFlag("filters.exclude-file", rootCmd.PersistentFlags().Lookup("exclude-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional: defaults are enough to run.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Catalog == nil {
		config.Catalog = &CatalogConfig{}
	}
	if config.Match == nil {
		config.Match = &MatchConfig{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}

	return config, nil
}

// matchOptions builds scorer options: the default weight table overlaid with
// configured weights, or no weights at all in unweighted mode.
func (c *Config) matchOptions() (matching.Options, error) {
	opts := matching.Options{TopN: c.Match.TopN}
	if c.Match.Unweighted {
		return opts, nil
	}

	opts.Weights = matching.DefaultWeights()
	for key, weight := range c.Match.Weights {
		attr, ok := catalog.ParseAttribute(key)
		if !ok {
			return opts, fmt.Errorf("match.weights: unknown attribute %q", key)
		}
		opts.Weights[attr] = weight
	}

	return opts, nil
}

func (c *Config) questions() ([]questionnaire.Question, error) {
	if len(c.Questions) == 0 {
		return questionnaire.DefaultQuestions(), nil
	}
	if err := questionnaire.ValidateQuestions(c.Questions); err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}
	return c.Questions, nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-output"),
	})
}
