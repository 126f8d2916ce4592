package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BLOG_CONTENT_DIR.
const EnvPrefix = "BLOG"

// Legacy variables honoured for compatibility with existing deployments.
const (
	EnvAppName        = "VITE_APP_NAME"
	EnvAppVersion     = "VITE_APP_VERSION"
	EnvAppEnv         = "VITE_APP_ENV"
	EnvLogLevel       = "VITE_LOG_LEVEL"
	EnvProductionURL  = "VITE_PRODUCTION_URL"
	EnvEnableCache    = "VITE_ENABLE_CACHE"
	DefaultConfigName = "blog"
)

// LoadOptions tunes where configuration is read from.
type LoadOptions struct {
	// ConfigFile is an explicit config path. When empty, blog.yaml is
	// looked up in SearchPaths and skipped if absent.
	ConfigFile  string
	SearchPaths []string
	// EnvFiles are loaded with godotenv before reading the environment.
	// Missing files are ignored. Nil means ".env".
	EnvFiles []string
}

// Load layers defaults, the optional config file, .env files and the
// process environment, then validates the result.
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return Config{}, err
	}

	v := viper.New()
	registerDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("blog config: decode: %w", err)
	}
	applyLegacyEnv(&cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if files == nil {
		files = []string{".env"}
	}
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("blog config: load %s: %w", file, err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) error {
	if file := strings.TrimSpace(opts.ConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("blog config: read %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	paths := opts.SearchPaths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("blog config: read %s.yaml: %w", DefaultConfigName, err)
	}
	return nil
}

func registerDefaults(v *viper.Viper, cfg Config) {
	defaults := map[string]any{
		"app.name":               cfg.App.Name,
		"app.version":            cfg.App.Version,
		"app.env":                cfg.App.Env,
		"content.dir":            cfg.Content.Dir,
		"content.extension":      cfg.Content.Extension,
		"content.module_prefix":  cfg.Content.ModulePrefix,
		"content.output":         cfg.Content.Output,
		"site.base_url":          cfg.Site.BaseURL,
		"site.title":             cfg.Site.Title,
		"site.description":       cfg.Site.Description,
		"site.language":          cfg.Site.Language,
		"site.generator":         cfg.Site.Generator,
		"feed.public_dir":        cfg.Feed.PublicDir,
		"feed.max_items":         cfg.Feed.MaxItems,
		"feed.stylesheets":       cfg.Feed.Stylesheets,
		"render.cache_enabled":   cfg.Render.CacheEnabled,
		"render.cache_capacity":  cfg.Render.CacheCapacity,
		"render.development_ttl": cfg.Render.DevelopmentTTL,
		"render.production_ttl":  cfg.Render.ProductionTTL,
		"render.timeout":         cfg.Render.Timeout,
		"render.stats_interval":  cfg.Render.StatsInterval,
		"logging.provider":       cfg.Logging.Provider,
		"logging.level":          cfg.Logging.Level,
		"logging.format":         cfg.Logging.Format,
		"logging.add_source":     cfg.Logging.AddSource,
		"logging.focus":          cfg.Logging.Focus,
		"server.addr":            cfg.Server.Addr,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// applyLegacyEnv maps the VITE_* variables onto cfg. They win over the
// config file and BLOG_* overrides.
func applyLegacyEnv(cfg *Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get(EnvAppName); ok {
		cfg.App.Name = value
	}
	if value, ok := get(EnvAppVersion); ok {
		cfg.App.Version = value
	}
	if value, ok := get(EnvAppEnv); ok {
		cfg.App.Env = strings.ToLower(value)
	}
	if value, ok := get(EnvProductionURL); ok {
		cfg.Site.BaseURL = strings.TrimRight(value, "/")
	}
	if value, ok := get(EnvEnableCache); ok {
		cfg.Render.CacheEnabled = strings.EqualFold(value, "true")
	}
	if value, ok := get(EnvLogLevel); ok {
		switch strings.ToLower(value) {
		case EnvDevelopment:
			cfg.Logging.Level = "debug"
		case EnvProduction:
			cfg.Logging.Level = "warn"
		case LevelNone:
			cfg.Logging.Level = LevelNone
		default:
			cfg.Logging.Level = strings.ToLower(value)
		}
	}
}
