package markdown

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/apperrors"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultCacheTTL applies when no ttl is configured.
const DefaultCacheTTL = time.Hour

// Renderer turns markdown bodies into sanitised trees, consulting a render
// cache first when one is configured. Renderer is safe for concurrent use
// as long as its cache is.
type Renderer struct {
	parser  *GoldmarkParser
	policy  *Policy
	cache   interfaces.RenderCache
	ttl     time.Duration
	timeout time.Duration
	logger  interfaces.Logger
	errors  *apperrors.Handler
}

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithCache enables memoisation through cache.
func WithCache(cache interfaces.RenderCache) RendererOption {
	return func(r *Renderer) {
		r.cache = cache
	}
}

// WithCacheTTL sets the lifetime of cached trees.
func WithCacheTTL(ttl time.Duration) RendererOption {
	return func(r *Renderer) {
		if ttl >= 0 {
			r.ttl = ttl
		}
	}
}

// WithTimeout bounds a single uncached render. Zero disables the bound.
func WithTimeout(timeout time.Duration) RendererOption {
	return func(r *Renderer) {
		if timeout >= 0 {
			r.timeout = timeout
		}
	}
}

// WithPolicy replaces the sanitisation allow-list.
func WithPolicy(policy *Policy) RendererOption {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithParseOptions configures the goldmark engine.
func WithParseOptions(opts ParseOptions) RendererOption {
	return func(r *Renderer) {
		r.parser = NewGoldmarkParser(opts)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs a Renderer with the default pipeline and no cache.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		parser: NewGoldmarkParser(ParseOptions{}),
		policy: DefaultPolicy(),
		ttl:    DefaultCacheTTL,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.errors = apperrors.NewHandler(r.logger)
	return r
}

// Render returns the sanitised tree for markdown. Cache failures are logged
// and bypassed; render failures return a *RenderError.
func (r *Renderer) Render(ctx context.Context, markdown string) (*Tree, error) {
	key := Fingerprint(markdown)

	if r.cache != nil {
		value, ok, err := r.cache.Get(ctx, key)
		switch {
		case err != nil:
			r.cacheFailure(&CacheError{Op: "get", Key: key, Cause: err})
		case ok:
			if tree, isTree := value.(*Tree); isTree && tree != nil {
				r.logger.Debug("render.cache.hit", "fingerprint", key)
				return tree, nil
			}
			r.cacheFailure(&CacheError{Op: "decode", Key: key, Cause: ErrUnexpectedCacheValue})
		default:
			r.logger.Debug("render.cache.miss", "fingerprint", key)
		}
	}

	tree, err := r.RenderUncached(ctx, markdown)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, tree, r.ttl); err != nil {
			r.cacheFailure(&CacheError{Op: "set", Key: key, Cause: err})
		}
	}
	return tree, nil
}

// RenderUncached runs the pipeline without consulting the cache.
func (r *Renderer) RenderUncached(ctx context.Context, markdown string) (*Tree, error) {
	key := Fingerprint(markdown)
	if err := ctx.Err(); err != nil {
		return nil, r.fail(key, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	type outcome struct {
		tree *Tree
		err  error
	}
	done := make(chan outcome, 1)
	started := time.Now()

	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				done <- outcome{err: apperrors.FromRecovered(recovered)}
			}
		}()
		tree, err := r.transform([]byte(markdown))
		done <- outcome{tree: tree, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, r.fail(key, ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, r.fail(key, out.err)
		}
		r.logger.Debug("render.completed", "fingerprint", key, "duration", time.Since(started))
		return out.tree, nil
	}
}

func (r *Renderer) transform(markdown []byte) (*Tree, error) {
	rendered, err := r.parser.Parse(markdown)
	if err != nil {
		return nil, err
	}
	tree, err := r.policy.Sanitize(rendered)
	if err != nil {
		return nil, err
	}
	assignHeadingIDs(tree)
	return tree, nil
}

func (r *Renderer) fail(key string, cause error) error {
	err := &RenderError{Fingerprint: key, Cause: cause}
	r.errors.Handle(err, "markdown.render", apperrors.HandleOptions{
		Context: map[string]any{"fingerprint": key, "cause": cause.Error()},
	})
	return err
}

func (r *Renderer) cacheFailure(err *CacheError) {
	r.logger.Warn("render.cache.failed",
		"op", err.Op,
		"fingerprint", err.Key,
		"code", apperrors.Code(err),
		"error", err.Cause,
	)
}
