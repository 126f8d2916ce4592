package buildcmd

import (
	"context"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

var (
	_ command.Commander[BuildContentCommand] = (*BuildContentHandler)(nil)
	_ command.Commander[BuildFeedCommand]    = (*BuildFeedHandler)(nil)
	_ command.Commander[BuildSiteCommand]    = (*BuildSiteHandler)(nil)
)

type buildFunc func(context.Context, generator.BuildOptions) (*generator.BuildResult, error)

// BuildContentHandler runs content module generation.
type BuildContentHandler struct {
	inner *commands.Handler[BuildContentCommand]
}

// NewBuildContentHandler constructs a handler wired to service.BuildContent.
func NewBuildContentHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildContentCommand]) *BuildContentHandler {
	exec := func(ctx context.Context, msg BuildContentCommand) error {
		return runBuild(ctx, service, gates, "build_content", msg.DryRun, msg.ResultCallback, func(s generator.Service) buildFunc {
			return s.BuildContent
		})
	}
	return &BuildContentHandler{
		inner: commands.NewHandler(exec, handlerOptions(logger, "build.content", func(msg BuildContentCommand) bool {
			return msg.DryRun
		}, opts)...),
	}
}

// Execute satisfies command.Commander[BuildContentCommand].
func (h *BuildContentHandler) Execute(ctx context.Context, msg BuildContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildFeedHandler runs RSS feed generation.
type BuildFeedHandler struct {
	inner *commands.Handler[BuildFeedCommand]
}

// NewBuildFeedHandler constructs a handler wired to service.BuildFeed.
func NewBuildFeedHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildFeedCommand]) *BuildFeedHandler {
	exec := func(ctx context.Context, msg BuildFeedCommand) error {
		return runBuild(ctx, service, gates, "build_feed", msg.DryRun, msg.ResultCallback, func(s generator.Service) buildFunc {
			return s.BuildFeed
		})
	}
	return &BuildFeedHandler{
		inner: commands.NewHandler(exec, handlerOptions(logger, "build.feed", func(msg BuildFeedCommand) bool {
			return msg.DryRun
		}, opts)...),
	}
}

// Execute satisfies command.Commander[BuildFeedCommand].
func (h *BuildFeedHandler) Execute(ctx context.Context, msg BuildFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildSiteHandler runs every generator in one pass.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to service.Build.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		return runBuild(ctx, service, gates, "build", msg.DryRun, msg.ResultCallback, func(s generator.Service) buildFunc {
			return s.Build
		})
	}
	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOptions(logger, "build.site", func(msg BuildSiteCommand) bool {
			return msg.DryRun
		}, opts)...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func runBuild(ctx context.Context, service generator.Service, gates FeatureGates, operation string, dryRun bool, cb ResultCallback, pick func(generator.Service) buildFunc) error {
	if service == nil || !gates.generatorEnabled() {
		return generator.ErrServiceDisabled
	}
	result, err := pick(service)(ctx, generator.BuildOptions{DryRun: dryRun})
	invokeCallback(cb, ResultEnvelope{
		Result: result,
		Metadata: map[string]any{
			"operation": operation,
		},
	})
	return err
}

func handlerOptions[T command.Message](logger interfaces.Logger, operation string, dryRun func(T) bool, extra []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](baseLogger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields(func(msg T) map[string]any {
			fields := map[string]any{}
			if dryRun(msg) {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[T](baseLogger)),
	}
	return append(opts, extra...)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
