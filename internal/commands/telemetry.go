package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/apperrors"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus classifies how a build command finished.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	TelemetryStatusFailed  TelemetryStatus = "failed"
	// TelemetryStatusContextError marks runs stopped by cancellation or deadline.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to telemetry callbacks once a command returns.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry runs after every command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs one summary line per build command. Failures carry
// the normalized error code so invalid frontmatter is distinguishable from
// write errors in the logs.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{
			"command", info.Command,
			"operation", info.Operation,
			"duration_ms", info.Duration.Milliseconds(),
		}
		if info.Status == TelemetryStatusSuccess {
			entry.Info("blog.command.completed", args...)
			return
		}
		args = append(args, "status", string(info.Status), "error", info.Error)
		if code := apperrors.Code(info.Error); code != "" {
			args = append(args, "error_code", code)
		}
		entry.Error("blog.command.failed", args...)
	}
}
