package apperrors

import (
	"errors"
	"fmt"
	"maps"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to normalised errors.
const (
	CodeFrontmatterInvalid = "FRONTMATTER_INVALID"
	CodeRenderFailed       = "RENDER_FAILED"
	CodeCacheFailed        = "CACHE_FAILED"
	CodeArtifactInvalid    = "ARTIFACT_INVALID"
	CodeGeneric            = "GENERIC_ERROR"
	CodeString             = "STRING_ERROR"
	CodeUnknown            = "UNKNOWN_ERROR"
)

const unknownMessage = "An unknown error occurred"

// Coded is implemented by domain errors that carry their own text code.
type Coded interface {
	ErrorCode() string
}

// Normalize converts err into a *goerrors.Error carrying a text code and
// the original error as its source. Domain codes win over go-errors found
// deeper in the chain; a bare go-errors value is returned as is.
func Normalize(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if existing, ok := err.(*goerrors.Error); ok && existing != nil {
		return existing
	}

	code := ""
	var coded Coded
	if errors.As(err, &coded) {
		code = coded.ErrorCode()
	}
	if code == "" {
		var existing *goerrors.Error
		if errors.As(err, &existing) && existing != nil {
			return existing
		}
		code = CodeGeneric
	}

	category := goerrors.CategoryInternal
	if code == CodeFrontmatterInvalid {
		category = goerrors.CategoryValidation
	}
	return goerrors.Wrap(err, category, err.Error()).WithTextCode(code)
}

// FromRecovered normalises a value obtained from recover().
func FromRecovered(value any) *goerrors.Error {
	switch v := value.(type) {
	case nil:
		return nil
	case error:
		return Normalize(v)
	case string:
		return goerrors.Wrap(errors.New(v), goerrors.CategoryInternal, v).WithTextCode(CodeString)
	default:
		return goerrors.Wrap(fmt.Errorf("%v", v), goerrors.CategoryInternal, unknownMessage).
			WithTextCode(CodeUnknown).
			WithMetadata(map[string]any{"original_error": fmt.Sprintf("%#v", v)})
	}
}

// Code returns the text code err normalises to, or "" for nil.
func Code(err error) string {
	normalized := Normalize(err)
	if normalized == nil {
		return ""
	}
	return normalized.TextCode
}

// Message returns the user facing message of err.
func Message(err error) string {
	normalized := Normalize(err)
	if normalized == nil {
		return ""
	}
	return normalized.Message
}

func withContext(err *goerrors.Error, where string, extra map[string]any) *goerrors.Error {
	meta := make(map[string]any, len(extra)+1)
	maps.Copy(meta, extra)
	if where != "" {
		meta["where"] = where
	}
	if len(meta) == 0 {
		return err
	}
	return err.WithMetadata(meta)
}
