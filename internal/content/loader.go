package content

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"

	"github.com/goliatone/go-blog/internal/frontmatter"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Document is a raw on-disk content unit keyed by its relative path.
type Document struct {
	Path     string
	Raw      []byte
	Checksum []byte
}

// Corpus is the outcome of a successful load: every document in discovery
// order and the post built from each one.
type Corpus struct {
	Documents []Document
	Posts     []Post
}

// LoaderConfig configures where posts are discovered.
type LoaderConfig struct {
	// Root is the directory inside the filesystem holding posts.
	Root string
	// Extension is the markdown file suffix (defaults to ".md").
	Extension string
}

// Loader reads, validates and assembles posts from a filesystem.
type Loader struct {
	fs     fs.FS
	root   string
	ext    string
	logger interfaces.Logger
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger attaches a logger used for per-document diagnostics.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig, opts ...LoaderOption) *Loader {
	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	l := &Loader{
		fs:     filesystem,
		root:   cleanRoot(cfg.Root),
		ext:    ext,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load discovers every post and validates it. The first invalid document
// aborts the load with its *frontmatter.ValidationError, and a repeated
// (topic, slug) pair aborts with a *DuplicatePostError; no partial corpus
// is returned.
func (l *Loader) Load(ctx context.Context) (*Corpus, error) {
	paths, err := Discover(l.fs, l.root, l.ext)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("content.discovery.completed", "root", l.root, "count", len(paths))

	corpus := &Corpus{
		Documents: make([]Document, 0, len(paths)),
		Posts:     make([]Post, 0, len(paths)),
	}
	seen := make(map[string]string, len(paths))

	for _, rel := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		doc, post, err := l.loadDocument(rel)
		if err != nil {
			return nil, err
		}
		if first, ok := seen[post.Key()]; ok {
			return nil, &DuplicatePostError{Topic: post.Topic, Slug: post.Slug, First: first, Second: rel}
		}
		seen[post.Key()] = rel

		logging.WithContentContext(l.logger, rel, post.Topic, post.Slug).
			Debug("content.post.loaded", "reading_time", post.ReadingTime, "tags", len(post.Tags))

		corpus.Documents = append(corpus.Documents, doc)
		corpus.Posts = append(corpus.Posts, post)
	}

	l.logger.Info("content.load.completed", "posts", len(corpus.Posts))
	return corpus, nil
}

// LoadFile reads and validates a single post at rel (relative to the root).
func (l *Loader) LoadFile(ctx context.Context, rel string) (Post, error) {
	select {
	case <-ctx.Done():
		return Post{}, ctx.Err()
	default:
	}
	_, post, err := l.loadDocument(rel)
	return post, err
}

func (l *Loader) loadDocument(rel string) (Document, Post, error) {
	full := rel
	if l.root != "." {
		full = path.Join(l.root, rel)
	}
	raw, err := fs.ReadFile(l.fs, full)
	if err != nil {
		return Document{}, Post{}, fmt.Errorf("content: read %s: %w", rel, err)
	}

	meta, body, err := frontmatter.Parse(raw, rel)
	if err != nil {
		logging.WithContentContext(l.logger, rel, "", "").Error("content.post.invalid", "error", err)
		return Document{}, Post{}, err
	}

	sum := sha256.Sum256(raw)
	doc := Document{Path: rel, Raw: raw, Checksum: sum[:]}
	return doc, NewPost(rel, l.ext, meta, string(body)), nil
}
