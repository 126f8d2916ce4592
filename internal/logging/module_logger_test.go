package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "blog.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, markdownModule)

	if len(provider.requested) != 1 || provider.requested[0] != markdownModule {
		t.Fatalf("expected module %s, got %v", markdownModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != markdownModule {
		t.Fatalf("expected module field %s, got %v", markdownModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := []struct {
		name   string
		get    func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"content", ContentLogger, contentModule},
		{"markdown", MarkdownLogger, markdownModule},
		{"cache", CacheLogger, cacheModule},
		{"generator", GeneratorLogger, generatorModule},
		{"cli", CLILogger, cliModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.get(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithContentContextSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithContentContext(rec, "css/a.md", " ", "a")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldContentPath] != "css/a.md" || got[fieldContentSlug] != "a" {
		t.Fatalf("unexpected fields: %v", got)
	}
	if _, ok := got[fieldContentTopic]; ok {
		t.Fatalf("expected blank topic to be skipped: %v", got)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2, "a": 3})

	fields := ContextFields(ctx)
	if fields["a"] != 3 || fields["b"] != 2 {
		t.Fatalf("unexpected merged fields: %v", fields)
	}
	fields["a"] = 99
	if ContextFields(ctx)["a"] != 3 {
		t.Fatal("expected ContextFields to return a copy")
	}
}
