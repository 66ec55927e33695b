package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultCatalogBaseURL = "https://api.thecatapi.com/v1"

type HTTPConfig struct {
	Port               string   `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// CatalogConfig configura el acceso al catálogo remoto de razas.
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"` // opcional, se manda como x-api-key
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit en requests/segundo hacia el catálogo. 0 = sin límite.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// CacheTTL > 0 activa cache en memoria de respuestas del catálogo.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type SearchConfig struct {
	Limit          int           `yaml:"limit"`
	MinQueryLength int           `yaml:"min_query_length"`
	QuietPeriod    time.Duration `yaml:"quiet_period"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
	File   string `yaml:"file"` // solo TUI: destino de logs para no ensuciar la pantalla
}

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
		},
		Catalog: CatalogConfig{
			BaseURL:   DefaultCatalogBaseURL,
			Timeout:   10 * time.Second,
			RateBurst: 5,
		},
		Search: SearchConfig{
			Limit:          20,
			MinQueryLength: 3,
			QuietPeriod:    1000 * time.Millisecond,
			SessionTTL:     30 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "cat-breed-search",
		},
	}
}

// Load arma la config: defaults -> archivo YAML (CATSEARCH_CONFIG, opcional) -> env.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(getenv("CATSEARCH_CONFIG")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		d, err := parseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = d
	}
	integer := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}

	str("PORT", &c.HTTP.Port)
	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		c.HTTP.CORSAllowedOrigins = splitList(v)
	}

	str("CATALOG_BASE_URL", &c.Catalog.BaseURL)
	str("CATALOG_API_KEY", &c.Catalog.APIKey)
	dur("CATALOG_TIMEOUT", &c.Catalog.Timeout)
	if v := strings.TrimSpace(getenv("CATALOG_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("CATALOG_RATE_LIMIT: %w", err))
		} else {
			c.Catalog.RateLimit = f
		}
	}
	integer("CATALOG_RATE_BURST", &c.Catalog.RateBurst)
	dur("CATALOG_CACHE_TTL", &c.Catalog.CacheTTL)

	integer("SEARCH_LIMIT", &c.Search.Limit)
	integer("SEARCH_MIN_LENGTH", &c.Search.MinQueryLength)
	dur("SEARCH_QUIET_PERIOD", &c.Search.QuietPeriod)
	dur("SESSION_TTL", &c.Search.SessionTTL)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("APP_NAME", &c.Log.App)
	str("LOG_FILE", &c.Log.File)

	return errors.Join(errs...)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		return errors.New("config: catalog base url required")
	}
	if c.Search.Limit <= 0 {
		return errors.New("config: search limit must be > 0")
	}
	// la sesión trata 0 como "usar el default"; acá 0 es un error explícito
	if c.Search.MinQueryLength < 1 {
		return errors.New("config: min query length must be >= 1")
	}
	if c.Search.QuietPeriod <= 0 {
		return errors.New("config: quiet period must be > 0")
	}
	if c.Catalog.RateLimit < 0 {
		return errors.New("config: rate limit must be >= 0")
	}
	return nil
}

// Addr devuelve ":<port>" para http.Server.
func (h HTTPConfig) Addr() string {
	p := strings.TrimPrefix(strings.TrimSpace(h.Port), ":")
	if p == "" {
		p = "8080"
	}
	return ":" + p
}

// parseDuration acepta "1500ms", "2s" o milisegundos sin unidad ("1000").
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
