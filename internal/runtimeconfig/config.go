package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	// LevelNone disables logging entirely.
	LevelNone = "none"
)

var (
	ErrAppEnvInvalid           = errors.New("blog config: app env is invalid")
	ErrContentDirRequired      = errors.New("blog config: content directory is required")
	ErrContentExtensionInvalid = errors.New("blog config: content extension must start with a dot")
	ErrContentOutputRequired   = errors.New("blog config: content output path is required")
	ErrSiteBaseURLInvalid      = errors.New("blog config: site base url is invalid")
	ErrFeedMaxItemsInvalid     = errors.New("blog config: feed max items must be positive")
	ErrFeedPublicDirRequired   = errors.New("blog config: feed public directory is required")
	ErrCacheCapacityInvalid    = errors.New("blog config: render cache capacity must be positive")
	ErrCacheTTLInvalid         = errors.New("blog config: render cache ttl must be zero or positive")
	ErrRenderTimeoutInvalid    = errors.New("blog config: render timeout must be zero or positive")
	ErrLoggingProviderUnknown  = errors.New("blog config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("blog config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("blog config: logging format is invalid")
	ErrServerAddrRequired      = errors.New("blog config: server address is required")
)

// Config aggregates every knob of the content pipeline.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Content ContentConfig `mapstructure:"content"`
	Site    SiteConfig    `mapstructure:"site"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// AppConfig identifies the running application.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
}

// ContentConfig locates markdown sources and the generated content artifact.
type ContentConfig struct {
	Dir          string `mapstructure:"dir"`
	Extension    string `mapstructure:"extension"`
	ModulePrefix string `mapstructure:"module_prefix"`
	Output       string `mapstructure:"output"`
}

// SiteConfig carries feed channel metadata.
type SiteConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Language    string `mapstructure:"language"`
	Generator   string `mapstructure:"generator"`
}

// FeedConfig controls rss.xml and its HTML preview.
type FeedConfig struct {
	PublicDir   string   `mapstructure:"public_dir"`
	MaxItems    int      `mapstructure:"max_items"`
	Stylesheets []string `mapstructure:"stylesheets"`
}

// RenderConfig controls the markdown renderer and its cache.
type RenderConfig struct {
	CacheEnabled   bool          `mapstructure:"cache_enabled"`
	CacheCapacity  int           `mapstructure:"cache_capacity"`
	DevelopmentTTL time.Duration `mapstructure:"development_ttl"`
	ProductionTTL  time.Duration `mapstructure:"production_ttl"`
	Timeout        time.Duration `mapstructure:"timeout"`
	StatsInterval  time.Duration `mapstructure:"stats_interval"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DefaultConfig returns the defaults used when no file or environment
// override is present.
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			Name:    "RJ Leyva Writes",
			Version: "0.0.1",
			Env:     EnvDevelopment,
		},
		Content: ContentConfig{
			Dir:          "src/content/blog",
			Extension:    ".md",
			ModulePrefix: "@/content/blog",
			Output:       "src/lib/content/generatedContent.json",
		},
		Site: SiteConfig{
			BaseURL:     "https://rjleyva-writes.pages.dev",
			Title:       "RJ Leyva's Blog",
			Description: "RJ Leyva's personal blog documenting web development insights through writing.",
			Language:    "en-us",
		},
		Feed: FeedConfig{
			PublicDir: "public",
			MaxItems:  20,
			Stylesheets: []string{
				"src/styles/themes.css",
				"src/styles/tokens.css",
			},
		},
		Render: RenderConfig{
			CacheEnabled:   true,
			CacheCapacity:  50,
			DevelopmentTTL: 5 * time.Minute,
			ProductionTTL:  time.Hour,
			Timeout:        10 * time.Second,
			StatsInterval:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Server: ServerConfig{
			Addr: ":4173",
		},
	}
}

// IsProduction reports whether the production env is active.
func (cfg Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(cfg.App.Env), EnvProduction)
}

// CacheTTL picks the render cache ttl for the active env.
func (cfg Config) CacheTTL() time.Duration {
	if cfg.IsProduction() {
		return cfg.Render.ProductionTTL
	}
	return cfg.Render.DevelopmentTTL
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	checks := []struct {
		sentinel error
		value    any
		rules    []validation.Rule
	}{
		{ErrAppEnvInvalid, normalize(cfg.App.Env), []validation.Rule{
			validation.Required, validation.In(EnvDevelopment, EnvProduction, EnvTest),
		}},
		{ErrContentDirRequired, strings.TrimSpace(cfg.Content.Dir), []validation.Rule{validation.Required}},
		{ErrContentExtensionInvalid, strings.TrimSpace(cfg.Content.Extension), []validation.Rule{
			validation.Required, validation.By(hasDotPrefix),
		}},
		{ErrContentOutputRequired, strings.TrimSpace(cfg.Content.Output), []validation.Rule{validation.Required}},
		{ErrSiteBaseURLInvalid, strings.TrimSpace(cfg.Site.BaseURL), []validation.Rule{
			validation.Required, is.URL, validation.By(hasHTTPScheme),
		}},
		{ErrFeedPublicDirRequired, strings.TrimSpace(cfg.Feed.PublicDir), []validation.Rule{validation.Required}},
		{ErrFeedMaxItemsInvalid, cfg.Feed.MaxItems, []validation.Rule{validation.Required, validation.Min(1)}},
		{ErrCacheCapacityInvalid, cfg.Render.CacheCapacity, []validation.Rule{validation.Required, validation.Min(1)}},
		{ErrCacheTTLInvalid, cfg.Render.DevelopmentTTL, []validation.Rule{validation.By(nonNegativeDuration)}},
		{ErrCacheTTLInvalid, cfg.Render.ProductionTTL, []validation.Rule{validation.By(nonNegativeDuration)}},
		{ErrRenderTimeoutInvalid, cfg.Render.Timeout, []validation.Rule{validation.By(nonNegativeDuration)}},
		{ErrLoggingProviderUnknown, normalize(cfg.Logging.Provider), []validation.Rule{
			validation.Required, validation.In("console", "gologger", "zerolog"),
		}},
		{ErrServerAddrRequired, strings.TrimSpace(cfg.Server.Addr), []validation.Rule{validation.Required}},
	}
	for _, check := range checks {
		if err := validation.Validate(check.value, check.rules...); err != nil {
			return fmt.Errorf("%w: %v", check.sentinel, err)
		}
	}

	if level := normalize(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := normalize(cfg.Logging.Format); format != "" && !isSupportedFormat(normalize(cfg.Logging.Provider), format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hasDotPrefix(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return errors.New("must look like .md")
	}
	return nil
}

func hasHTTPScheme(value any) error {
	s, _ := value.(string)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return errors.New("must use http or https")
	}
	return nil
}

func nonNegativeDuration(value any) error {
	d, _ := value.(time.Duration)
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", LevelNone:
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	switch provider {
	case "gologger":
		return format == "json" || format == "console" || format == "pretty"
	case "zerolog":
		return format == "json" || format == "console" || format == "pretty"
	default:
		return false
	}
}
