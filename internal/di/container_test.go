package di

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/logging/zerologger"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if logger := provider.GetLogger("blog.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderUsesZerolog(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "zerolog"
	cfg.Logging.Level = "warning"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(*zerologger.Provider); !ok {
		t.Fatalf("expected zerolog provider, got %T", container.LoggerProvider())
	}
}

func TestConfigureLoggerProviderSilencesLevelNone(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = runtimeconfig.LevelNone

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(noopProvider); !ok {
		t.Fatalf("expected no-op provider, got %T", container.LoggerProvider())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = ""

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewContainerHonoursCacheToggle(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Render.CacheEnabled = false

	container, err := NewContainer(cfg, WithLoggerProvider(silentProvider{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.Cache() != nil {
		t.Fatal("expected no cache when disabled")
	}
	if container.Renderer() == nil || container.Generator() == nil || container.Errors() == nil {
		t.Fatal("expected services to be wired")
	}
}

func TestContainerWiresLoaderAndRenderer(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/css/a.md": {Data: []byte("---\ntitle: A\ndate: 2024-01-01\ndescription: d\n---\n# Hello\n")},
	}
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = "posts"

	container, err := NewContainer(cfg, WithContentFS(fsys), WithLoggerProvider(silentProvider{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	ctx := context.Background()
	corpus, err := container.Loader().Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(corpus.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(corpus.Posts))
	}

	tree, err := container.Renderer().Render(ctx, corpus.Posts[0].Content)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := tree.HTML(); !strings.Contains(got, `<h1 id="hello">Hello</h1>`) {
		t.Fatalf("unexpected html %q", got)
	}
	if container.Cache().Len() != 1 {
		t.Fatalf("expected rendered tree to be cached, got %d entries", container.Cache().Len())
	}
}

type silentProvider struct{}

func (silentProvider) GetLogger(string) interfaces.Logger { return noopProvider{}.GetLogger("") }
