package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"cat-breed-search/internal/adapters/catalog/cached"
	"cat-breed-search/internal/adapters/catalog/thecatapi"
	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/domain/sessions"
	"cat-breed-search/internal/platform/config"
	"cat-breed-search/internal/platform/logger"
	"cat-breed-search/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// globalFlags pisan la config cargada de archivo/env.
type globalFlags struct {
	baseURL     string
	apiKey      string
	quietPeriod time.Duration
	minLength   int
	logFile     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "catsearch",
		Short:        "Search cat breeds from the terminal",
		Long:         `Interactive cat breed search: type at least 3 characters, results show up after 1s without typing. ctrl+n / ctrl+w / ctrl+l sort by name, weight and life span.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.baseURL, "base-url", "", "catalog base URL (overrides CATALOG_BASE_URL)")
	pf.StringVar(&flags.apiKey, "api-key", "", "catalog API key (overrides CATALOG_API_KEY)")
	pf.DurationVar(&flags.quietPeriod, "quiet-period", 0, "debounce quiet period (overrides SEARCH_QUIET_PERIOD)")
	pf.IntVar(&flags.minLength, "min-length", 0, "minimum query length (overrides SEARCH_MIN_LENGTH)")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file (overrides LOG_FILE)")

	root.AddCommand(newSearchCmd(flags))
	return root
}

func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("base-url") {
		cfg.Catalog.BaseURL = flags.baseURL
	}
	if f.Changed("api-key") {
		cfg.Catalog.APIKey = flags.apiKey
	}
	if f.Changed("quiet-period") {
		cfg.Search.QuietPeriod = flags.quietPeriod
	}
	if f.Changed("min-length") {
		cfg.Search.MinQueryLength = flags.minLength
	}
	if f.Changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	return cfg, cfg.Validate()
}

// newLogger: con archivo configurado, rota con lumberjack; si no, fallback.
func newLogger(cfg config.Config, fallback io.Writer) logger.Logger {
	var out io.Writer = fallback
	if cfg.Log.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // días
		}
	}
	if out == nil {
		return logger.Nop()
	}
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
		Output: out,
	})
}

func newFetcher(cfg config.Config, log logger.Logger) (*breeds.Service, error) {
	client, err := thecatapi.NewClient(thecatapi.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		RateBurst: cfg.Catalog.RateBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog client: %w", err)
	}
	return breeds.NewService(cached.New(client, cfg.Catalog.CacheTTL), breeds.Options{
		Limit:  cfg.Search.Limit,
		Logger: log,
	}), nil
}

func runTUI(cfg config.Config) error {
	// la pantalla es del TUI: sin archivo, los logs se descartan
	log := newLogger(cfg, nil)

	fetcher, err := newFetcher(cfg, log)
	if err != nil {
		return err
	}

	sess := sessions.NewSession(uuid.NewString(), fetcher, sessions.Options{
		QuietPeriod:    cfg.Search.QuietPeriod,
		MinQueryLength: cfg.Search.MinQueryLength,
		Logger:         log,
	})
	defer sess.Close()

	model := tui.New(sess, tui.Options{
		MinQueryLength: cfg.Search.MinQueryLength,
		Logger:         log,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
