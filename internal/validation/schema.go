package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/apperrors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Issue is one schema violation, located by JSON pointer.
type Issue struct {
	Location string
	Message  string
}

// ArtifactError reports why a generated artifact does not match its schema.
type ArtifactError struct {
	Artifact string
	Issues   []Issue
	Cause    error
}

func (e *ArtifactError) Error() string {
	prefix := "artifact"
	if e.Artifact != "" {
		prefix = e.Artifact
	}
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return prefix + ": " + e.Cause.Error()
		}
		return prefix + ": " + ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := pointer(issue.Location)
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *ArtifactError) Unwrap() error {
	return ErrSchemaValidation
}

// ErrorCode reports the normalised error code.
func (e *ArtifactError) ErrorCode() string {
	return apperrors.CodeArtifactInvalid
}

// Issues lists the schema violations carried by err.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var artifactErr *ArtifactError
	if errors.As(err, &artifactErr) && artifactErr != nil {
		return artifactErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return leafIssues(schemaErr)
	}
	return []Issue{{Message: err.Error()}}
}

func pointer(location string) string {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return "#"
	case strings.HasPrefix(location, "#"):
		return location
	default:
		return "#" + location
	}
}

func compileSchema(name string, encoded []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func validateArtifact(artifact string, schema *jsonschema.Schema, document any) error {
	if err := schema.Validate(document); err != nil {
		return &ArtifactError{
			Artifact: artifact,
			Issues:   Issues(err),
			Cause:    err,
		}
	}
	return nil
}

// leafIssues flattens the jsonschema error tree to the failures that have
// no further causes.
func leafIssues(root *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(root)
	return issues
}
