package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	buildcmd "github.com/goliatone/go-blog/internal/commands/build"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestBuildModuleWiresHandlers(t *testing.T) {
	out := t.TempDir()
	resources, err := BuildModule(Options{
		SearchPaths: []string{t.TempDir()},
		EnvFiles:    []string{},
		ContentFS: fstest.MapFS{
			"posts/css/grid.md": {Data: []byte("---\ntitle: Grid\ndate: 2024-01-01\ndescription: Grid basics\ntags: [css]\n---\n# Grid\n")},
		},
		Overrides: func(cfg *runtimeconfig.Config) {
			cfg.Content.Dir = "posts"
			cfg.Content.Output = filepath.Join(out, "generatedContent.json")
			cfg.Feed.PublicDir = filepath.Join(out, "public")
			cfg.Feed.Stylesheets = nil
			cfg.Logging.Level = runtimeconfig.LevelNone
		},
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Container == nil || resources.Handlers == nil || resources.Logger == nil {
		t.Fatalf("expected resources to be initialised, got %#v", resources)
	}

	var envelope buildcmd.ResultEnvelope
	err = resources.Handlers.Site.Execute(context.Background(), buildcmd.BuildSiteCommand{
		ResultCallback: func(env buildcmd.ResultEnvelope) { envelope = env },
	})
	if err != nil {
		t.Fatalf("execute build: %v", err)
	}
	if envelope.Result == nil || envelope.Result.Posts != 1 {
		t.Fatalf("expected one post built, got %#v", envelope.Result)
	}
	if _, err := os.Stat(filepath.Join(out, "public", "rss.xml")); err != nil {
		t.Fatalf("expected rss.xml written: %v", err)
	}
}

func TestBuildModuleRejectsInvalidConfig(t *testing.T) {
	_, err := BuildModule(Options{
		SearchPaths: []string{t.TempDir()},
		EnvFiles:    []string{},
		Overrides: func(cfg *runtimeconfig.Config) {
			cfg.Render.CacheCapacity = 0
		},
	})
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
}
