package blog

import (
	"context"
	"io"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/frontmatter"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/rendercache"
)

// Post is a validated blog post with its raw markdown body.
type Post = content.Post

// Corpus is the ordered set of posts discovered under the content directory.
type Corpus = content.Corpus

// Store answers post queries over a loaded content module.
type Store = content.Store

// TopicSummary reports how many posts a topic holds.
type TopicSummary = content.TopicSummary

// Tree is the sanitized element tree produced by Render.
type Tree = markdown.Tree

// RenderResult is the outcome a Tracker hands to the latest requester.
type RenderResult = markdown.Result

// Tracker discards render results that a newer request superseded.
type Tracker = markdown.Tracker

// BuildOptions narrows a generator run.
type BuildOptions = generator.BuildOptions

// BuildResult reports what a generator run produced.
type BuildResult = generator.BuildResult

// CacheStats reports render cache occupancy and hit counts.
type CacheStats = rendercache.Stats

// FrontmatterError reports an invalid post header.
type FrontmatterError = frontmatter.ValidationError

var (
	ErrFrontmatterInvalid = frontmatter.ErrInvalid
	ErrPostNotFound       = content.ErrPostNotFound
)

// Option customises the container behind a Module.
type Option = di.Option

// WithContentFS reads markdown from fsys instead of the local filesystem.
var WithContentFS = di.WithContentFS

// WithLoggerProvider overrides the provider selected by the logging config.
var WithLoggerProvider = di.WithLoggerProvider

// Module is the top level façade over the content pipeline.
type Module struct {
	container *di.Container
}

// New constructs a Module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts discovers and validates every post. The first invalid post fails
// the whole load.
func (m *Module) Posts(ctx context.Context) (*Corpus, error) {
	return m.container.Loader().Load(ctx)
}

// Render turns source markdown into a sanitized tree, consulting the render cache
// when it is enabled.
func (m *Module) Render(ctx context.Context, source string) (*Tree, error) {
	return m.container.Renderer().Render(ctx, source)
}

// RenderLatest renders source through tracker and reports whether the
// result is still the most recent request.
func (m *Module) RenderLatest(ctx context.Context, tracker *Tracker, source string) (RenderResult, bool) {
	return tracker.Render(ctx, m.container.Renderer(), source)
}

// CacheStats returns render cache stats. ok is false when caching is disabled.
func (m *Module) CacheStats() (stats CacheStats, ok bool) {
	cache := m.container.Cache()
	if cache == nil {
		return CacheStats{}, false
	}
	return cache.Stats(), true
}

// ClearCache drops every cached render.
func (m *Module) ClearCache(ctx context.Context) error {
	cache := m.container.Cache()
	if cache == nil {
		return nil
	}
	return cache.Clear(ctx)
}

// Build writes the content module, rss.xml and rss-viewer.html.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.Generator().Build(ctx, opts)
}

// BuildContent writes only the content module.
func (m *Module) BuildContent(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.Generator().BuildContent(ctx, opts)
}

// BuildFeed writes only rss.xml and rss-viewer.html.
func (m *Module) BuildFeed(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.Generator().BuildFeed(ctx, opts)
}

// NewTracker returns a Tracker for one render consumer.
func NewTracker() *Tracker {
	return markdown.NewTracker()
}

// OpenStore reads a generated content module and indexes its posts.
func OpenStore(r io.Reader) (*Store, error) {
	module, err := generator.DecodeContentModule(r)
	if err != nil {
		return nil, err
	}
	return module.Store()
}
