package di

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-blog/internal/apperrors"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/logging/zerologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/rendercache"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Container wires the pipeline services from one validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	contentFS      fs.FS

	loader    *content.Loader
	cache     *rendercache.Cache
	renderer  *markdown.Renderer
	generator generator.Service
	errors    *apperrors.Handler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithContentFS reads markdown from fsys instead of the local filesystem.
// Content.Dir is then resolved inside fsys.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := configureLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	c.errors = apperrors.NewHandler(logging.ModuleLogger(c.loggerProvider, "blog.errors"))
	c.configureContent()
	c.configureRenderer()
	c.configureGenerator()
	return c, nil
}

func (c *Container) configureContent() {
	root := c.Config.Content.Dir
	fsys := c.contentFS
	if fsys == nil {
		fsys = os.DirFS(root)
		root = "."
	}
	c.loader = content.NewLoader(fsys, content.LoaderConfig{
		Root:      root,
		Extension: c.Config.Content.Extension,
	}, content.WithLogger(logging.ContentLogger(c.loggerProvider)))
}

func (c *Container) configureRenderer() {
	renderCfg := c.Config.Render
	opts := []markdown.RendererOption{
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
		markdown.WithTimeout(renderCfg.Timeout),
		markdown.WithCacheTTL(c.Config.CacheTTL()),
	}
	if renderCfg.CacheEnabled {
		c.cache = rendercache.New(
			rendercache.WithMaxSize(renderCfg.CacheCapacity),
			rendercache.WithDefaultTTL(c.Config.CacheTTL()),
			rendercache.WithLogger(logging.CacheLogger(c.loggerProvider)),
		)
		opts = append(opts, markdown.WithCache(c.cache))
	}
	c.renderer = markdown.NewRenderer(opts...)
}

func (c *Container) configureGenerator() {
	cfg := c.Config
	c.generator = generator.NewService(generator.Config{
		ContentOutput: cfg.Content.Output,
		ModulePrefix:  cfg.Content.ModulePrefix,
		PublicDir:     cfg.Feed.PublicDir,
		BaseURL:       cfg.Site.BaseURL,
		MaxFeedItems:  cfg.Feed.MaxItems,
		Stylesheets:   append([]string(nil), cfg.Feed.Stylesheets...),
		Site: generator.SiteMetadata{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			Language:    cfg.Site.Language,
			Generator:   cfg.Site.Generator,
		},
	}, generator.Dependencies{
		Source: c.loader,
		Logger: logging.GeneratorLogger(c.loggerProvider),
	})
}

func configureLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == runtimeconfig.LevelNone {
		return noopProvider{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		opts := console.Options{Writer: os.Stderr}
		if parsed, ok := console.ParseLevel(level); ok {
			opts.MinLevel = &parsed
		}
		return console.NewProvider(opts), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "zerolog":
		if level == "warning" {
			level = "warn"
		}
		return zerologger.NewProvider(zerologger.Config{
			Level:  level,
			Format: cfg.Format,
		})
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a logger scoped to module.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Loader returns the content loader.
func (c *Container) Loader() *content.Loader {
	return c.loader
}

// Cache returns the render cache, or nil when caching is disabled.
func (c *Container) Cache() *rendercache.Cache {
	return c.cache
}

// Renderer returns the markdown renderer.
func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

// Generator returns the artifact generator.
func (c *Container) Generator() generator.Service {
	return c.generator
}

// Errors returns the shared error handler.
func (c *Container) Errors() *apperrors.Handler {
	return c.errors
}
