package apperrors

import (
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// HandleOptions tunes a single Handle call.
type HandleOptions struct {
	// Silent suppresses logging.
	Silent bool
	// Context is attached to the error metadata.
	Context map[string]any
}

// Handler normalises and logs errors on behalf of a component.
type Handler struct {
	logger interfaces.Logger
}

// NewHandler builds a Handler that logs through logger.
func NewHandler(logger interfaces.Logger) *Handler {
	return &Handler{logger: logging.Ensure(logger)}
}

// Handle normalises err, tags it with where and logs it unless silenced.
func (h *Handler) Handle(err error, where string, opts ...HandleOptions) *goerrors.Error {
	normalized := Normalize(err)
	if normalized == nil {
		return nil
	}
	var opt HandleOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if where == "" {
		where = "unknown"
	}
	normalized = withContext(normalized, where, opt.Context)
	if !opt.Silent {
		h.logger.Error("error.handled", "where", where, "code", normalized.TextCode, "error", err)
	}
	return normalized
}

// HandleFunc runs fn and returns its value, or fallback after handling a
// returned error or a panic.
func HandleFunc[T any](h *Handler, where string, fallback T, fn func() (T, error)) (result T) {
	defer func() {
		if recovered := recover(); recovered != nil {
			normalized := FromRecovered(recovered)
			h.Handle(normalized, where)
			result = fallback
		}
	}()

	value, err := fn()
	if err != nil {
		h.Handle(err, where)
		return fallback
	}
	return value
}
