package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobscout"

	defaultMinMatchPct   = 70
	defaultMaxJobAgeDays = 14
	defaultMatcher       = "standard"
	defaultTopDisplay    = 10
)

type Config struct {
	ResumeFile    string `mapstructure:"resume-file"`
	TaxonomyFile  string `mapstructure:"taxonomy-file"`
	MinMatchPct   int    `mapstructure:"min-match-pct"`
	MaxJobAgeDays int    `mapstructure:"max-job-age-days"`
	Matcher       string `mapstructure:"matcher"`

	User     *UserConfig     `mapstructure:"user"`
	Search   *SearchConfig   `mapstructure:"search"`
	Sources  *SourcesConfig  `mapstructure:"sources"`
	Outputs  *OutputsConfig  `mapstructure:"outputs"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	AI       *AIConfig       `mapstructure:"ai"`
}

// UserConfig carries candidate facts declared in configuration. They take
// precedence over resume-derived values; experience-years -1 means unset.
type UserConfig struct {
	Skills          []string `mapstructure:"skills"`
	ExperienceYears float64  `mapstructure:"experience-years"`
}

type SearchConfig struct {
	Keywords      []string `mapstructure:"keywords"`
	Location      string   `mapstructure:"location"`
	IncludeRemote bool     `mapstructure:"include-remote"`
}

type SourcesConfig struct {
	RemoteOK   bool   `mapstructure:"remoteok"`
	Web3Career bool   `mapstructure:"web3career"`
	File       string `mapstructure:"file"`
}

type OutputsConfig struct {
	Dir        string `mapstructure:"dir"`
	CSV        bool   `mapstructure:"csv"`
	JSONL      bool   `mapstructure:"jsonl"`
	TopDisplay int    `mapstructure:"top-display"`
}

type PostgresConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
	DSNFile string `mapstructure:"dsn-file"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	TopN     int           `mapstructure:"top-n"`
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
		Short: "jobscout scores job postings against your resume and ranks the matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("resume-file", "JOBSCOUT_RESUME_FILE"); err != nil {
		log.Fatalf("binding JOBSCOUT_RESUME_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("postgres.dsn-file", "JOBSCOUT_POSTGRES_DSN_FILE"); err != nil {
		log.Fatalf("binding JOBSCOUT_POSTGRES_DSN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("min-match-pct", defaultMinMatchPct)
	viper.SetDefault("max-job-age-days", defaultMaxJobAgeDays)
	viper.SetDefault("matcher", defaultMatcher)
	viper.SetDefault("user.experience-years", -1)
	viper.SetDefault("outputs.dir", ".")
	viper.SetDefault("outputs.csv", true)
	viper.SetDefault("outputs.jsonl", true)
	viper.SetDefault("outputs.top-display", defaultTopDisplay)
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	// A local .env supplies the environment before viper reads it.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
