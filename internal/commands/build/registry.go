package buildcmd

import (
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterBuildCommands.
type HandlerSet struct {
	Content *BuildContentHandler
	Feed    *BuildFeedHandler
	Site    *BuildSiteHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	gates       FeatureGates
	contentOpts []commands.HandlerOption[BuildContentCommand]
	feedOpts    []commands.HandlerOption[BuildFeedCommand]
	siteOpts    []commands.HandlerOption[BuildSiteCommand]
}

// WithFeatureGates guards every handler with gates.
func WithFeatureGates(gates FeatureGates) Option {
	return func(cfg *options) {
		cfg.gates = gates
	}
}

// WithContentHandlerOptions forwards options to the BuildContentHandler constructor.
func WithContentHandlerOptions(opts ...commands.HandlerOption[BuildContentCommand]) Option {
	return func(cfg *options) {
		cfg.contentOpts = append(cfg.contentOpts, opts...)
	}
}

// WithFeedHandlerOptions forwards options to the BuildFeedHandler constructor.
func WithFeedHandlerOptions(opts ...commands.HandlerOption[BuildFeedCommand]) Option {
	return func(cfg *options) {
		cfg.feedOpts = append(cfg.feedOpts, opts...)
	}
}

// WithSiteHandlerOptions forwards options to the BuildSiteHandler constructor.
func WithSiteHandlerOptions(opts ...commands.HandlerOption[BuildSiteCommand]) Option {
	return func(cfg *options) {
		cfg.siteOpts = append(cfg.siteOpts, opts...)
	}
}

// RegisterBuildCommands builds the generator command handlers and registers
// them with reg in content, feed, site order. reg may be nil.
func RegisterBuildCommands(reg CommandRegistry, service generator.Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("build command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "build")
	set := &HandlerSet{
		Content: NewBuildContentHandler(service, logger, cfg.gates, cfg.contentOpts...),
		Feed:    NewBuildFeedHandler(service, logger, cfg.gates, cfg.feedOpts...),
		Site:    NewBuildSiteHandler(service, logger, cfg.gates, cfg.siteOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Content, set.Feed, set.Site} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
