package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/apperrors"
	"github.com/goliatone/go-blog/internal/frontmatter"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type telemetryEntry struct {
	level string
	msg   string
	args  []any
}

type telemetryLogger struct {
	entries []telemetryEntry
}

func (l *telemetryLogger) record(level, msg string, args []any) {
	l.entries = append(l.entries, telemetryEntry{level: level, msg: msg, args: args})
}

func (l *telemetryLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *telemetryLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *telemetryLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *telemetryLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *telemetryLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *telemetryLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *telemetryLogger) WithContext(context.Context) interfaces.Logger { return l }

func argValue(args []any, key string) (any, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1], true
		}
	}
	return nil, false
}

func TestDefaultTelemetryLogsCompletion(t *testing.T) {
	logger := &telemetryLogger{}
	report := DefaultTelemetry[testMessage](logger)

	report(context.Background(), testMessage{}, TelemetryInfo{
		Command:   "blog.build.site",
		Operation: "build.site",
		Duration:  15 * time.Millisecond,
		Status:    TelemetryStatusSuccess,
	})

	if len(logger.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if entry.level != "info" || entry.msg != "blog.command.completed" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if v, _ := argValue(entry.args, "duration_ms"); v != int64(15) {
		t.Fatalf("expected duration 15ms, got %v", v)
	}
	if v, _ := argValue(entry.args, "operation"); v != "build.site" {
		t.Fatalf("expected operation build.site, got %v", v)
	}
}

func TestDefaultTelemetryLogsFailureCode(t *testing.T) {
	logger := &telemetryLogger{}
	report := DefaultTelemetry[testMessage](logger)

	cause := &frontmatter.ValidationError{SourceID: "css/broken.md", Reason: "missing title"}
	report(context.Background(), testMessage{}, TelemetryInfo{
		Command: "blog.build.content",
		Error:   wrapExecuteError(cause),
		Status:  TelemetryStatusFailed,
	})

	if len(logger.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if entry.level != "error" || entry.msg != "blog.command.failed" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if v, _ := argValue(entry.args, "error_code"); v != apperrors.CodeFrontmatterInvalid {
		t.Fatalf("expected frontmatter code, got %v", v)
	}
	if v, _ := argValue(entry.args, "status"); v != string(TelemetryStatusFailed) {
		t.Fatalf("expected failed status, got %v", v)
	}
}

func TestDefaultTelemetryFallsBackToGenericCode(t *testing.T) {
	logger := &telemetryLogger{}
	report := DefaultTelemetry[testMessage](logger)

	report(context.Background(), testMessage{}, TelemetryInfo{
		Error:  errors.New("disk full"),
		Status: TelemetryStatusContextError,
	})

	if v, _ := argValue(logger.entries[0].args, "error_code"); v != apperrors.CodeGeneric {
		t.Fatalf("expected generic code, got %v", v)
	}
}
