package blog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	blog "github.com/goliatone/go-blog"
)

func newModule(t *testing.T, files fstest.MapFS) (*blog.Module, string) {
	t.Helper()
	out := t.TempDir()
	cfg := blog.DefaultConfig()
	cfg.Content.Dir = "posts"
	cfg.Content.Output = filepath.Join(out, "generatedContent.json")
	cfg.Feed.PublicDir = filepath.Join(out, "public")
	cfg.Feed.Stylesheets = nil
	cfg.Logging.Level = "none"

	module, err := blog.New(cfg, blog.WithContentFS(files))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module, out
}

func samplePosts() fstest.MapFS {
	return fstest.MapFS{
		"posts/css/grid.md": {Data: []byte("---\ntitle: Grid\ndate: 2024-01-01\ndescription: Grid basics\ntags: [css]\n---\n# Grid\n\nBody text.\n")},
		"posts/wezterm/setup.md": {Data: []byte("---\ntitle: Setup\ndate: 2024-02-01\ndescription: Terminal setup\ntags: [tools]\n---\n## Install\n")},
	}
}

func TestModuleBuildAndOpenStore(t *testing.T) {
	module, out := newModule(t, samplePosts())
	ctx := context.Background()

	corpus, err := module.Posts(ctx)
	if err != nil {
		t.Fatalf("load posts: %v", err)
	}
	if len(corpus.Posts) != 2 {
		t.Fatalf("expected two posts, got %d", len(corpus.Posts))
	}

	result, err := module.Build(ctx, blog.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Posts != 2 || result.FeedItems != 2 || len(result.Artifacts) != 3 {
		t.Fatalf("unexpected build result %+v", result)
	}

	file, err := os.Open(filepath.Join(out, "generatedContent.json"))
	if err != nil {
		t.Fatalf("open content module: %v", err)
	}
	defer file.Close()

	store, err := blog.OpenStore(file)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	recent := store.Recent(1)
	if len(recent) != 1 || recent[0].Slug != "setup" {
		t.Fatalf("expected setup as most recent, got %+v", recent)
	}
	post, err := store.Get("css", "grid")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if !strings.Contains(post.Content, "Body text.") {
		t.Fatalf("expected raw body preserved, got %q", post.Content)
	}
	if _, err := store.Get("css", "missing"); !errors.Is(err, blog.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestModuleRenderUsesCache(t *testing.T) {
	module, _ := newModule(t, samplePosts())
	ctx := context.Background()

	first, err := module.Render(ctx, "# Hello")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := module.Render(ctx, "# Hello")
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if first != second {
		t.Fatal("expected cached tree on second render")
	}

	stats, ok := module.CacheStats()
	if !ok {
		t.Fatal("expected cache enabled by default")
	}
	if stats.Size != 1 || stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if err := module.ClearCache(ctx); err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if stats, _ := module.CacheStats(); stats.Size != 0 {
		t.Fatalf("expected empty cache after clear, got %+v", stats)
	}
}

func TestModuleRenderLatest(t *testing.T) {
	module, _ := newModule(t, samplePosts())
	tracker := blog.NewTracker()

	result, current := module.RenderLatest(context.Background(), tracker, "## Intro")
	if !current {
		t.Fatal("expected the only request to be current")
	}
	if result.Err != nil || result.Content == nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if got := result.Content.HTML(); got != `<h2 id="intro">Intro</h2>` {
		t.Fatalf("unexpected html %q", got)
	}
}

func TestModuleInvalidFrontmatterFailsLoad(t *testing.T) {
	files := samplePosts()
	files["posts/css/broken.md"] = &fstest.MapFile{Data: []byte("---\ndate: 2024-01-01\ndescription: x\n---\nbody\n")}
	module, _ := newModule(t, files)

	_, err := module.Posts(context.Background())
	var verr *blog.FrontmatterError
	if !errors.As(err, &verr) {
		t.Fatalf("expected frontmatter error, got %v", err)
	}
	if verr.SourceID != "css/broken.md" {
		t.Fatalf("expected source css/broken.md, got %s", verr.SourceID)
	}
	if !errors.Is(err, blog.ErrFrontmatterInvalid) {
		t.Fatalf("expected ErrFrontmatterInvalid, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Feed.MaxItems = 0
	if _, err := blog.New(cfg); !errors.Is(err, blog.ErrFeedMaxItemsInvalid) {
		t.Fatalf("expected ErrFeedMaxItemsInvalid, got %v", err)
	}
}
