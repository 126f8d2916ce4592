package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// DefaultExtension is the file suffix treated as a markdown post.
const DefaultExtension = ".md"

// Discover walks root within fsys and returns the slash-separated paths,
// relative to root, of every regular file ending in ext. The result is
// sorted lexicographically so builds do not depend on directory order.
func Discover(fsys fs.FS, root, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	root = cleanRoot(root)

	info, err := fs.Stat(fsys, root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContentRootMissing, root)
		}
		return nil, fmt.Errorf("content: stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentRootMissing, root)
	}

	var paths []string
	err = fs.WalkDir(fsys, root, func(current string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ext) {
			return nil
		}
		rel := current
		if root != "." {
			rel = strings.TrimPrefix(current, root+"/")
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// DiscoverDir is Discover over the operating system directory dir.
func DiscoverDir(dir, ext string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContentRootMissing, dir)
		}
		return nil, fmt.Errorf("content: stat root %s: %w", dir, err)
	}
	return Discover(os.DirFS(dir), ".", ext)
}

func cleanRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return "."
	}
	return path.Clean(strings.TrimPrefix(root, "/"))
}
