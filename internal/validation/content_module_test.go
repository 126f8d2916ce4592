package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/apperrors"
)

func validArtifact() map[string]any {
	return map[string]any{
		"modules": map[string]any{
			"/src/content/css/a.md": "---\ntitle: A\n---\nBody",
		},
		"posts": []any{
			map[string]any{
				"id":          "0f8fad5b-d9cb-469f-a165-70867728950e",
				"title":       "A",
				"date":        "2024-01-01T00:00:00.000Z",
				"description": "d",
				"tags":        []string{"css"},
				"slug":        "a",
				"topic":       "css",
				"readingTime": 1,
				"content":     "Body",
			},
		},
	}
}

func TestValidateContentModuleAcceptsArtifact(t *testing.T) {
	if err := ValidateContentModule(validArtifact()); err != nil {
		t.Fatalf("expected valid artifact, got %v", err)
	}
}

func TestValidateContentModuleAcceptsEncodedBytes(t *testing.T) {
	raw := []byte(`{"modules":{},"posts":[]}`)
	if err := ValidateContentModule(raw); err != nil {
		t.Fatalf("expected valid encoded artifact, got %v", err)
	}
}

func TestValidateContentModuleReportsIssues(t *testing.T) {
	artifact := validArtifact()
	post := artifact["posts"].([]any)[0].(map[string]any)
	post["date"] = "2024-01-01"
	post["readingTime"] = -1
	delete(post, "slug")

	err := ValidateContentModule(artifact)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) < 3 {
		t.Fatalf("expected at least three issues, got %+v", issues)
	}
	joined := err.Error()
	for _, fragment := range []string{"/posts/0/date", "/posts/0/readingTime"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in %q", fragment, joined)
		}
	}
}

func TestValidateContentModuleRejectsMalformedBytes(t *testing.T) {
	err := ValidateContentModule([]byte("{"))
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestContentModuleSchemaReturnsCopy(t *testing.T) {
	first := ContentModuleSchema()
	first[0] = 'x'
	if ContentModuleSchema()[0] == 'x' {
		t.Fatal("expected schema bytes to be copied")
	}
}

func TestArtifactErrorFormatting(t *testing.T) {
	err := &ArtifactError{Artifact: "content module", Issues: []Issue{
		{Location: "/posts", Message: "bad"},
		{Location: "", Message: "root"},
	}}
	if got := err.Error(); got != "content module: #/posts: bad; #: root" {
		t.Fatalf("unexpected message %q", got)
	}
	empty := &ArtifactError{}
	if empty.Error() != "artifact: "+ErrSchemaValidation.Error() {
		t.Fatalf("unexpected empty message %q", empty.Error())
	}
}

func TestArtifactErrorCarriesCode(t *testing.T) {
	artifact := validArtifact()
	delete(artifact, "posts")

	err := ValidateContentModule(artifact)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := apperrors.Code(err); code != apperrors.CodeArtifactInvalid {
		t.Fatalf("expected %s, got %s", apperrors.CodeArtifactInvalid, code)
	}
	if !strings.HasPrefix(err.Error(), "content module: ") {
		t.Fatalf("expected artifact prefix, got %q", err.Error())
	}
}
