package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/validation"
)

// ContentModule is the generated content artifact: raw document bindings
// keyed by module path plus the serialized posts in discovery order.
type ContentModule struct {
	Modules map[string]string        `json:"modules"`
	Posts   []content.SerializedPost `json:"posts"`
}

// NewContentModule builds the artifact for a validated corpus.
func NewContentModule(corpus *content.Corpus, prefix string) *ContentModule {
	module := &ContentModule{
		Modules: map[string]string{},
		Posts:   []content.SerializedPost{},
	}
	if corpus == nil {
		return module
	}
	for _, doc := range corpus.Documents {
		module.Modules[modulePath(prefix, doc.Path)] = string(doc.Raw)
	}
	for _, post := range corpus.Posts {
		module.Posts = append(module.Posts, content.Serialize(post))
	}
	return module
}

// Encode renders the artifact as indented JSON and checks it against the
// content module schema.
func (m *ContentModule) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("generator: encode content module: %w", err)
	}
	encoded := buf.Bytes()
	if err := validation.ValidateContentModule(encoded); err != nil {
		return nil, err
	}
	return encoded, nil
}

// Store hydrates the serialized posts into a queryable store.
func (m *ContentModule) Store() (*content.Store, error) {
	if m == nil {
		return content.NewStore(nil)
	}
	return content.NewStoreFromSerialized(m.Posts)
}

// DecodeContentModule reads an artifact previously written by the generator.
func DecodeContentModule(r io.Reader) (*ContentModule, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("generator: read content module: %w", err)
	}
	if err := validation.ValidateContentModule(raw); err != nil {
		return nil, err
	}
	var module ContentModule
	if err := json.Unmarshal(raw, &module); err != nil {
		return nil, fmt.Errorf("generator: decode content module: %w", err)
	}
	if module.Modules == nil {
		module.Modules = map[string]string{}
	}
	return &module, nil
}

func modulePath(prefix, rel string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return rel
	}
	return prefix + "/" + strings.TrimLeft(rel, "/")
}

func (s *service) writeContentModule(ctx context.Context, writer artifactWriter, dirCache map[string]struct{}, corpus *content.Corpus) (Artifact, error) {
	encoded, err := NewContentModule(corpus, s.cfg.ModulePrefix).Encode()
	if err != nil {
		return Artifact{}, err
	}
	target := path.Clean(s.cfg.ContentOutput)
	artifact, err := s.write(ctx, writer, dirCache, target, categoryContent, "application/json", encoded)
	if err != nil {
		return Artifact{}, err
	}
	s.deps.Logger.Info("generator.content.written",
		"path", target,
		"documents", len(corpus.Documents),
		"posts", len(corpus.Posts),
	)
	for _, doc := range corpus.Documents {
		s.deps.Logger.Debug("generator.content.document", "path", doc.Path)
	}
	return artifact, nil
}
