package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/ai/gemini"
	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/pipeline"
	"github.com/jobscout/jobscout/internal/report"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/scoring"
	"github.com/jobscout/jobscout/internal/secrets"
	"github.com/jobscout/jobscout/internal/sources"
	"github.com/jobscout/jobscout/internal/taxonomy"
)

const (
	PromptExit        = "Exit"
	PromptFullSummary = "Show the full ranked list"
	PromptDumpToFile  = "Dump matched postings to file"
)

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExit, PromptFullSummary, PromptDumpToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobscout main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "skip the interactive menu after the run")
	runCmd.Flags().StringP("resume-file", "r", "", "path to the resume (.txt, .md or .pdf)")

	viper.BindPFlag("resume-file", runCmd.Flags().Lookup("resume-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}
	if config.ResumeFile == "" {
		logger.Fatal("resume file is required",
			zap.String("hint", "set resume-file in the config, the --resume-file flag or JOBSCOUT_RESUME_FILE"),
		)
	}

	tax := loadTaxonomy(config, logger)
	profile := loadProfile(config, tax, logger)
	engine := buildEngine(config, logger)

	srcs := buildSources(config, logger)
	if len(srcs) == 0 {
		logger.Fatal("no sources enabled",
			zap.String("hint", "enable at least one of sources.remoteok, sources.web3career or sources.file"),
		)
	}

	runner := pipeline.New(srcs, profile, engine, tax, pipeline.Config{
		MinMatchPct:   config.MinMatchPct,
		MaxJobAgeDays: config.MaxJobAgeDays,
	}, logger)

	result := runner.Run(ctx)

	if len(result.Matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings above the match threshold"))
		return
	}

	annotateMatches(ctx, config, profile, result, logger)

	scrapedAt := time.Now()
	writeOutputs(config, result, scrapedAt, logger)
	persistMatches(ctx, config, result, scrapedAt, logger)

	report.PrintSummary(os.Stdout, result, topDisplay(config))

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}
	if err := menu(result); err != nil {
		logger.Fatal("interactive menu failed", zap.Error(err))
	}
}

func loadTaxonomy(config *Config, logger *zap.Logger) *taxonomy.Taxonomy {
	if config.TaxonomyFile == "" {
		return taxonomy.Default()
	}

	tax, err := taxonomy.Load(config.TaxonomyFile)
	if err != nil {
		logger.Fatal("loading taxonomy", zap.Error(err))
	}
	logger.Info("loaded taxonomy",
		zap.String("file", config.TaxonomyFile),
		zap.Int("terms", len(tax.Terms())),
	)
	return tax
}

func loadProfile(config *Config, tax *taxonomy.Taxonomy, logger *zap.Logger) *resume.Profile {
	text, err := resume.LoadText(config.ResumeFile)
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	profile := resume.ExtractProfile(text, tax)
	logger.Info("extracted resume profile",
		zap.Int("skills", len(profile.Skills())),
		zap.Int("keywords", len(profile.Keywords())),
		zap.Float64("experience_years", profile.ExperienceYears()),
		zap.Strings("target_roles", profile.TargetRoles()),
	)
	return profile
}

func buildEngine(config *Config, logger *zap.Logger) *scoring.Engine {
	policy, err := scoring.LookupPolicy(config.Matcher)
	if err != nil {
		logger.Fatal("selecting matcher", zap.Error(err))
	}

	overrides := scoring.UserOverrides{ExperienceYears: scoring.NoUserExperience}
	if config.User != nil {
		overrides.Skills = config.User.Skills
		overrides.ExperienceYears = config.User.ExperienceYears
	}

	engine, err := scoring.NewEngine(policy, overrides, scoring.NewCache(1024))
	if err != nil {
		logger.Fatal("building scoring engine", zap.Error(err))
	}

	logger.Info("scoring engine ready",
		zap.String("matcher", policy.Name),
		zap.Float64("user_experience_years", overrides.ExperienceYears),
		zap.Int("user_skills", len(overrides.Skills)),
	)
	return engine
}

func buildSources(config *Config, logger *zap.Logger) []jobs.Source {
	query := jobs.Query{MaxAgeDays: config.MaxJobAgeDays}
	if config.Search != nil {
		query.Keywords = config.Search.Keywords
		query.Location = config.Search.Location
		query.IncludeRemote = config.Search.IncludeRemote
	}

	var srcs []jobs.Source
	if config.Sources == nil {
		return srcs
	}
	if config.Sources.RemoteOK {
		srcs = append(srcs, sources.NewRemoteOKSource(query, logger))
	}
	if config.Sources.Web3Career {
		srcs = append(srcs, sources.NewWeb3CareerSource(query, logger))
	}
	if config.Sources.File != "" {
		srcs = append(srcs, sources.NewFileSource(config.Sources.File, logger))
	}
	return srcs
}

func annotateMatches(ctx context.Context, config *Config, profile *resume.Profile, result *pipeline.Result, logger *zap.Logger) {
	if config.AI == nil || !config.AI.Enabled {
		return
	}

	advisor, err := newAdvisor(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping ai annotation", zap.Error(err))
		return
	}

	topN := config.AI.TopN
	if topN <= 0 {
		topN = topDisplay(config)
	}

	ai.Annotate(ctx, advisor, ai.ProfileSummary(profile), result.Matches, topN, logger)
}

func newAdvisor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Advisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

func writeOutputs(config *Config, result *pipeline.Result, scrapedAt time.Time, logger *zap.Logger) {
	outputs := config.Outputs
	if outputs == nil {
		return
	}

	dir := outputs.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Fatal("creating output directory", zap.Error(err))
	}
	stamp := scrapedAt.Format("20060102_150405")

	if outputs.CSV {
		path := filepath.Join(dir, fmt.Sprintf("matches_%s.csv", stamp))
		if err := report.WriteCSV(path, result.Matches); err != nil {
			logger.Fatal("writing csv report", zap.Error(err))
		}
		logger.Info("wrote csv report", zap.String("file", path), zap.Int("rows", len(result.Matches)))
	}

	if outputs.JSONL {
		path := filepath.Join(dir, fmt.Sprintf("matches_%s.jsonl", stamp))
		if err := report.WriteJSONL(path, result.Matches, scrapedAt); err != nil {
			logger.Fatal("writing jsonl report", zap.Error(err))
		}
		logger.Info("wrote jsonl report", zap.String("file", path), zap.Int("lines", len(result.Matches)))
	}
}

func persistMatches(ctx context.Context, config *Config, result *pipeline.Result, scrapedAt time.Time, logger *zap.Logger) {
	if config.Postgres == nil || !config.Postgres.Enabled {
		return
	}

	dsn, err := secrets.Load(secrets.Source{
		Name:  "postgres dsn",
		Value: config.Postgres.DSN,
		File:  config.Postgres.DSNFile,
	})
	if err != nil {
		logger.Fatal("loading postgres dsn", zap.Error(err))
	}

	store, err := report.OpenStore(ctx, dsn)
	if err != nil {
		logger.Fatal("opening postgres store", zap.Error(err))
	}
	defer store.Close()

	if err := store.Save(ctx, result.Matches, scrapedAt); err != nil {
		logger.Fatal("saving matches to postgres", zap.Error(err))
	}
	logger.Info("saved matches to postgres", zap.Int("count", len(result.Matches)))
}

func topDisplay(config *Config) int {
	if config.Outputs != nil && config.Outputs.TopDisplay > 0 {
		return config.Outputs.TopDisplay
	}
	return defaultTopDisplay
}

func menu(result *pipeline.Result) error {
	for {
		_, action, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}

		switch action {
		case PromptFullSummary:
			report.PrintSummary(os.Stdout, result, 0)
		case PromptDumpToFile:
			postings := &jobs.Postings{}
			for _, m := range result.Matches {
				postings.Append(m.Posting)
			}
			file, err := postings.DumpToTmpFile()
			if err != nil {
				return fmt.Errorf("dumping postings: %w", err)
			}
			fmt.Printf("matched postings written to %s\n", file)
		case PromptExit:
			return nil
		}
	}
}
