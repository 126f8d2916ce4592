package content

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/frontmatter"
)

func twoPostFS() fstest.MapFS {
	return fstest.MapFS{
		"blog/css/a.md": {Data: []byte("---\ntitle: A\ndate: 2024-01-01\ndescription: d\n---\nFirst post body.\n")},
		"blog/wezterm/b.md": {Data: []byte("---\ntitle: B\ndate: 2024-06-01\ndescription: d2\ntags: [x]\n---\nSecond post body.\n")},
	}
}

func TestLoaderBuildsPostsFromDiscovery(t *testing.T) {
	loader := NewLoader(twoPostFS(), LoaderConfig{Root: "blog"})

	corpus, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(corpus.Posts) != 2 || len(corpus.Documents) != 2 {
		t.Fatalf("expected two posts and documents, got %d/%d", len(corpus.Posts), len(corpus.Documents))
	}

	a, b := corpus.Posts[0], corpus.Posts[1]
	if a.Topic != "css" || a.Slug != "a" || a.Title != "A" {
		t.Fatalf("unexpected first post %+v", a.Metadata)
	}
	if b.Topic != "wezterm" || b.Slug != "b" || len(b.Tags) != 1 || b.Tags[0] != "x" {
		t.Fatalf("unexpected second post %+v", b.Metadata)
	}
	if corpus.Documents[0].Path != "css/a.md" || len(corpus.Documents[0].Checksum) == 0 {
		t.Fatalf("unexpected document %+v", corpus.Documents[0])
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct post ids")
	}
}

func TestLoaderFailsFastOnInvalidFrontmatter(t *testing.T) {
	fsys := twoPostFS()
	fsys["blog/css/broken.md"] = &fstest.MapFile{Data: []byte("---\ndate: 2024-01-01\ndescription: d\n---\nbody\n")}

	corpus, err := NewLoader(fsys, LoaderConfig{Root: "blog"}).Load(context.Background())
	if corpus != nil {
		t.Fatal("expected no corpus on failure")
	}
	verr, ok := frontmatter.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.SourceID != "css/broken.md" {
		t.Fatalf("expected offending file to be named, got %q", verr.SourceID)
	}
}

func TestLoaderRejectsDuplicatePostKeys(t *testing.T) {
	fsys := twoPostFS()
	fsys["blog/archive/css/a.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Again\ndate: 2023-01-01\ndescription: d\n---\nbody\n")}

	_, err := NewLoader(fsys, LoaderConfig{Root: "blog"}).Load(context.Background())
	var dup *DuplicatePostError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicatePostError, got %v", err)
	}
	if dup.First != "archive/css/a.md" || dup.Second != "css/a.md" {
		t.Fatalf("unexpected duplicate report %+v", dup)
	}
	if !errors.Is(err, ErrDuplicatePost) {
		t.Fatal("expected ErrDuplicatePost sentinel")
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader(twoPostFS(), LoaderConfig{Root: "blog"}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	post, err := NewLoader(twoPostFS(), LoaderConfig{Root: "blog"}).LoadFile(context.Background(), "wezterm/b.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if post.Title != "B" || post.Content == "" {
		t.Fatalf("unexpected post %+v", post)
	}
}
