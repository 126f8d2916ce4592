package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	buildcmd "github.com/goliatone/go-blog/internal/commands/build"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/rendercache"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/spf13/cobra"
)

type postLoader interface {
	LoadFile(ctx context.Context, rel string) (content.Post, error)
}

type postRenderer interface {
	Render(ctx context.Context, source string) (*markdown.Tree, error)
}

type handlerSet struct {
	content command.Commander[buildcmd.BuildContentCommand]
	feed    command.Commander[buildcmd.BuildFeedCommand]
	site    command.Commander[buildcmd.BuildSiteCommand]
}

type moduleResources struct {
	config   runtimeconfig.Config
	handlers handlerSet
	loader   postLoader
	renderer postRenderer
	cache    *rendercache.Cache
	logger   interfaces.Logger
}

type moduleOptions struct {
	configFile string
	envFiles   []string
	contentDir string
}

var moduleBuilder = buildModule

func buildModule(opts moduleOptions) (*moduleResources, error) {
	resources, err := bootstrap.BuildModule(bootstrap.Options{
		ConfigFile: opts.configFile,
		EnvFiles:   opts.envFiles,
		Overrides: func(cfg *runtimeconfig.Config) {
			if dir := strings.TrimSpace(opts.contentDir); dir != "" {
				cfg.Content.Dir = dir
			}
		},
	})
	if err != nil {
		return nil, err
	}
	container := resources.Container
	return &moduleResources{
		config: container.Config,
		handlers: handlerSet{
			content: resources.Handlers.Content,
			feed:    resources.Handlers.Feed,
			site:    resources.Handlers.Site,
		},
		loader:   container.Loader(),
		renderer: container.Renderer(),
		cache:    container.Cache(),
		logger:   resources.Logger,
	}, nil
}

type rootOptions struct {
	moduleOptions
}

func (o *rootOptions) module() (*moduleResources, error) {
	module, err := moduleBuilder(o.moduleOptions)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	return module, nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "blog",
		Short: "Build the blog content module and RSS feed",
		Long: `blog validates the markdown posts under the content directory and
generates the content module consumed by the site, the RSS feed and its
HTML preview.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./blog.yaml)")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files loaded before reading the environment (default .env)")
	flags.StringVar(&opts.contentDir, "content-dir", "", "markdown content directory (overrides content.dir)")

	root.AddCommand(
		newContentCommand(opts),
		newFeedCommand(opts),
		newBuildCommand(opts),
		newRenderCommand(opts),
		newServeCommand(opts),
	)
	return root
}
