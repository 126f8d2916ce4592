package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryContent writeCategory = "content"
	categoryFeed    writeCategory = "feed"
	categoryPreview writeCategory = "preview"
)

// writeFileRequest describes a file write operation routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter abstracts where generator outputs land.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

func newArtifactWriter(root string, dryRun bool) artifactWriter {
	if dryRun {
		return noopWriter{}
	}
	return &fsWriter{root: root}
}

// fsWriter writes artifacts below root, replacing each target atomically.
type fsWriter struct {
	root string
}

func (w *fsWriter) resolve(rel string) string {
	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) || strings.TrimSpace(w.root) == "" {
		return rel
	}
	return filepath.Join(w.root, rel)
}

func (w *fsWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(w.resolve(path), 0o755)
}

func (w *fsWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target := w.resolve(req.Path)
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", req.Path, err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, req.Content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		cleanup()
		return fmt.Errorf("generator: replace %s: %w", req.Path, err)
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }
