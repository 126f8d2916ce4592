package bootstrap

import (
	"io/fs"

	buildcmd "github.com/goliatone/go-blog/internal/commands/build"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options configures the blog module used by the CLI.
type Options struct {
	ConfigFile  string
	SearchPaths []string
	EnvFiles    []string
	// ContentFS replaces the local content directory, mainly for tests.
	ContentFS fs.FS
	// Overrides runs after the config is loaded and before it is validated
	// by the container.
	Overrides func(*runtimeconfig.Config)
	// LoggerProvider replaces the provider selected by the logging config.
	LoggerProvider interfaces.LoggerProvider
}

// Resources exposes the wired container and the build command handlers.
type Resources struct {
	Container *di.Container
	Handlers  *buildcmd.HandlerSet
	Logger    interfaces.Logger
}

// BuildModule loads configuration and wires every service the CLI needs.
func BuildModule(opts Options) (*Resources, error) {
	cfg, err := runtimeconfig.Load(runtimeconfig.LoadOptions{
		ConfigFile:  opts.ConfigFile,
		SearchPaths: opts.SearchPaths,
		EnvFiles:    opts.EnvFiles,
	})
	if err != nil {
		return nil, err
	}
	if opts.Overrides != nil {
		opts.Overrides(&cfg)
	}

	var containerOpts []di.Option
	if opts.ContentFS != nil {
		containerOpts = append(containerOpts, di.WithContentFS(opts.ContentFS))
	}
	if opts.LoggerProvider != nil {
		containerOpts = append(containerOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	container, err := di.NewContainer(cfg, containerOpts...)
	if err != nil {
		return nil, err
	}

	handlers, err := buildcmd.RegisterBuildCommands(nil, container.Generator(), container.LoggerProvider())
	if err != nil {
		return nil, err
	}

	return &Resources{
		Container: container,
		Handlers:  handlers,
		Logger:    logging.CLILogger(container.LoggerProvider()),
	}, nil
}
