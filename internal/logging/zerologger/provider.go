// Package zerologger adapts github.com/rs/zerolog to the blog logging
// contracts. It is the lightweight provider used by the CLI when
// LOG_PROVIDER=zerolog.
package zerologger

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config selects level and output format. Format is json (default) or console.
type Config struct {
	Level  string
	Format string
	Writer io.Writer
}

// Provider hands out zerolog-backed loggers sharing one root.
type Provider struct {
	root zerolog.Logger
}

// NewProvider builds the zerolog root logger.
func NewProvider(cfg Config) (*Provider, error) {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
	case "console", "pretty":
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	default:
		return nil, fmt.Errorf("logging: unsupported zerolog format %q", cfg.Format)
	}

	level := zerolog.InfoLevel
	if trimmed := strings.TrimSpace(cfg.Level); trimmed != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(trimmed))
		if err != nil {
			return nil, fmt.Errorf("logging: invalid zerolog level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	root := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &Provider{root: root}, nil
}

// GetLogger returns a logger tagged with the given name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	inner := p.root
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		inner = inner.With().Str("logger", trimmed).Logger()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner zerolog.Logger
	ctx   context.Context
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.emit(zerolog.TraceLevel, msg, args) }
func (l *adapter) Debug(msg string, args ...any) { l.emit(zerolog.DebugLevel, msg, args) }
func (l *adapter) Info(msg string, args ...any)  { l.emit(zerolog.InfoLevel, msg, args) }
func (l *adapter) Warn(msg string, args ...any)  { l.emit(zerolog.WarnLevel, msg, args) }
func (l *adapter) Error(msg string, args ...any) { l.emit(zerolog.ErrorLevel, msg, args) }

// Fatal logs at fatal level without exiting; process exit stays with the caller.
func (l *adapter) Fatal(msg string, args ...any) { l.emit(zerolog.FatalLevel, msg, args) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &adapter{
		inner: l.inner.With().Fields(maps.Clone(fields)).Logger(),
		ctx:   l.ctx,
	}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	return &adapter{inner: l.inner, ctx: ctx}
}

func (l *adapter) emit(level zerolog.Level, msg string, args []any) {
	event := l.inner.WithLevel(level)
	if event == nil {
		return
	}
	if fields := logging.ContextFields(l.ctx); len(fields) > 0 {
		event = event.Fields(fields)
	}
	if len(args) > 0 {
		event = event.Fields(args)
	}
	event.Msg(msg)
}
