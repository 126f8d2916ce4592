package markdown

import (
	"context"
	"sync"

	"github.com/goliatone/go-blog/internal/apperrors"
)

// Token identifies one render request.
type Token struct {
	Generation  uint64
	Fingerprint string
}

// Result is the observable outcome of a render request. Message carries the
// inline error text shown in place of the content when Err is set.
type Result struct {
	Token   Token
	Content *Tree
	Err     error
	Message string
}

// Tracker enforces last-requested-wins across overlapping render requests:
// a resolution is accepted only while its content is still the most
// recently requested one and no newer resolution has been accepted. Stale
// work is not cancelled; its result is discarded.
type Tracker struct {
	mu        sync.Mutex
	next      uint64
	latest    Token
	committed uint64
	result    *Result
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin registers a request for content and returns its token.
func (t *Tracker) Begin(content string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.latest = Token{Generation: t.next, Fingerprint: Fingerprint(content)}
	return t.latest
}

// Current reports whether tok would still be accepted.
func (t *Tracker) Current(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.acceptsLocked(tok)
}

// Resolve records the outcome of tok. The boolean is false, and the state
// untouched, when tok is stale.
func (t *Tracker) Resolve(tok Token, tree *Tree, err error) (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.acceptsLocked(tok) {
		return Result{}, false
	}

	result := Result{Token: tok, Content: tree}
	if err != nil {
		result.Content = nil
		result.Err = err
		result.Message = apperrors.Message(err)
	}
	t.committed = tok.Generation
	t.result = &result
	return result, true
}

// Latest returns the last accepted result.
func (t *Tracker) Latest() (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result == nil {
		return Result{}, false
	}
	return *t.result, true
}

// Render runs a tracked render of content through renderer.
func (t *Tracker) Render(ctx context.Context, renderer *Renderer, content string) (Result, bool) {
	tok := t.Begin(content)
	tree, err := renderer.Render(ctx, content)
	return t.Resolve(tok, tree, err)
}

func (t *Tracker) acceptsLocked(tok Token) bool {
	return tok.Fingerprint == t.latest.Fingerprint && tok.Generation > t.committed
}
