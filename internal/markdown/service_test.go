package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/apperrors"
	"github.com/goliatone/go-blog/internal/rendercache"
)

func TestRenderDropsScriptAndKeepsText(t *testing.T) {
	tree, err := NewRenderer().Render(context.Background(), "<script>alert(1)</script>\n\nHello")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := tree.HTML()
	if !strings.Contains(got, "Hello") {
		t.Fatalf("expected Hello in output, got %q", got)
	}
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("expected script to be removed, got %q", got)
	}
}

func TestRenderDropsInlineEventHandlers(t *testing.T) {
	tree, err := NewRenderer().Render(context.Background(), "Look <img src=x onerror=alert(1)> here\n\n[x](javascript:alert(1))")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := tree.HTML()
	if strings.Contains(got, "onerror") || strings.Contains(got, "javascript:") || strings.Contains(got, "<img") {
		t.Fatalf("expected unsafe content to be removed, got %q", got)
	}
	if !strings.Contains(got, "Look") {
		t.Fatalf("expected text to survive, got %q", got)
	}
}

func TestRenderGFMFeatures(t *testing.T) {
	source := strings.Join([]string{
		"# Intro",
		"",
		"~~old~~ **bold** _em_ https://example.com",
		"",
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
		"",
		"- [x] done",
		"- [ ] todo",
		"",
		"```go",
		"fmt.Println(\"hi\")",
		"```",
	}, "\n")

	tree, err := NewRenderer().Render(context.Background(), source)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := tree.HTML()
	for _, want := range []string{"<del>old</del>", "<strong>bold</strong>", "<em>em</em>", `<a href="https://example.com">`, "<table>", "<td>1</td>", "done</li>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "<input") {
		t.Fatalf("expected task list checkboxes to be stripped, got %q", got)
	}
	blocks := tree.CodeBlocks()
	if len(blocks) != 1 || blocks[0].Language != "go" {
		t.Fatalf("expected a go code block, got %+v", blocks)
	}
}

func TestRenderAssignsUniqueHeadingIDs(t *testing.T) {
	tree, err := NewRenderer().Render(context.Background(), "# Intro\n\n## Intro\n\n### Intro\n\n## Setup")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	headings := tree.Headings()
	want := []string{"intro", "intro-1", "intro-2", "setup"}
	if len(headings) != len(want) {
		t.Fatalf("expected %d headings, got %+v", len(want), headings)
	}
	for i, id := range want {
		if headings[i].ID != id {
			t.Fatalf("heading %d: expected id %q, got %q", i, id, headings[i].ID)
		}
	}
	if headings[1].Level != 2 || headings[1].Text != "Intro" {
		t.Fatalf("unexpected heading %+v", headings[1])
	}
}

func TestRenderStripsFrontmatter(t *testing.T) {
	tree, err := NewRenderer().Render(context.Background(), "---\ntitle: A\n---\nBody text")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := tree.HTML(); strings.Contains(got, "title:") || !strings.Contains(got, "Body text") {
		t.Fatalf("expected frontmatter to be stripped, got %q", got)
	}
}

func TestRenderUsesCache(t *testing.T) {
	cache := rendercache.New()
	renderer := NewRenderer(WithCache(cache), WithCacheTTL(time.Minute))
	source := "# Cached\n\nSame body"

	first, err := renderer.Render(context.Background(), source)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := renderer.Render(context.Background(), source)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first != second {
		t.Fatal("expected second render to be served from cache")
	}
	if stats := cache.Stats(); stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("unexpected cache stats %+v", stats)
	}

	uncached, err := renderer.RenderUncached(context.Background(), source)
	if err != nil {
		t.Fatalf("RenderUncached: %v", err)
	}
	if uncached.HTML() != second.HTML() {
		t.Fatalf("cached output differs from uncached\ncached:   %q\nuncached: %q", second.HTML(), uncached.HTML())
	}
}

func TestRenderFallsBackOnCacheFailure(t *testing.T) {
	cache := &failingCache{err: errors.New("disk on fire")}
	renderer := NewRenderer(WithCache(cache))

	tree, err := renderer.Render(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("expected cache failure to be absorbed, got %v", err)
	}
	if !strings.Contains(tree.HTML(), "Hello") {
		t.Fatalf("unexpected output %q", tree.HTML())
	}
	if cache.gets != 1 || cache.sets != 1 {
		t.Fatalf("expected cache to be consulted, got gets=%d sets=%d", cache.gets, cache.sets)
	}
}

func TestRenderIgnoresForeignCacheValues(t *testing.T) {
	cache := rendercache.New()
	if err := cache.Set(context.Background(), Fingerprint("Hello"), "not a tree", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tree, err := NewRenderer(WithCache(cache)).Render(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(tree.HTML(), "Hello") {
		t.Fatalf("unexpected output %q", tree.HTML())
	}
}

func TestRenderReportsGenericFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := NewRenderer().Render(ctx, "Hello")
	if tree != nil {
		t.Fatal("expected no partial tree")
	}
	if !errors.Is(err, ErrRenderFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected render failure wrapping context.Canceled, got %v", err)
	}
	if err.Error() != "failed to render markdown" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if apperrors.Code(err) != apperrors.CodeRenderFailed {
		t.Fatalf("unexpected code %q", apperrors.Code(err))
	}
}

func TestTreeRenderHTMLWithCustomCodeBlocks(t *testing.T) {
	tree, err := NewRenderer().Render(context.Background(), "Intro\n\n```sh\nls\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var buf bytes.Buffer
	err = tree.RenderHTML(&buf, func(w io.Writer, block *Node) error {
		_, err := fmt.Fprintf(w, `<code-block lang=%q>%s</code-block>`, block.Language, strings.TrimSpace(block.Text))
		return err
	})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(buf.String(), `<code-block lang="sh">ls</code-block>`) {
		t.Fatalf("expected custom code block output, got %q", buf.String())
	}
}

func TestFingerprint(t *testing.T) {
	cases := map[string]string{
		"":                    "0",
		"hello":               "1n1e4y",
		"Hello, world!":       "v3bvnv",
		"# Title\n\nBody 😀": "46sg2i",
	}
	for input, want := range cases {
		if got := Fingerprint(input); got != want {
			t.Fatalf("Fingerprint(%q): expected %q, got %q", input, want, got)
		}
	}
	if Fingerprint("ab") == Fingerprint("ba") {
		t.Fatal("expected order sensitive fingerprint")
	}
}

type failingCache struct {
	err  error
	gets int
	sets int
}

func (f *failingCache) Get(context.Context, string) (any, bool, error) {
	f.gets++
	return nil, false, f.err
}

func (f *failingCache) Set(context.Context, string, any, time.Duration) error {
	f.sets++
	return f.err
}

func (f *failingCache) Delete(context.Context, string) error { return f.err }
func (f *failingCache) Clear(context.Context) error          { return f.err }
