package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotDirectory is wrapped by InvalidPathError when the scan root exists
// but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// InvalidPathError reports a scan root that is missing or not a directory.
// It aborts the scan with no partial result.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid scan root %s: %v", e.Path, e.Err)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

// Options controls what a Scanner includes in its results.
type Options struct {
	// MaxDepth limits traversal depth; 0 means unlimited. A depth of 1
	// scans only the root's immediate children.
	MaxDepth int

	// IncludeHidden includes dot-prefixed files and directories.
	IncludeHidden bool

	// Extensions restricts emitted files to the given extensions
	// (case-insensitive, with or without the leading dot). Directories are
	// unaffected. Empty means no restriction.
	Extensions []string
}

// Scanner walks a directory tree and produces one Entry per file and
// subdirectory reachable under the root.
type Scanner struct {
	opts Options
	exts map[string]struct{}
}

// New constructs a Scanner with the provided options.
func New(opts Options) *Scanner {
	exts := make(map[string]struct{})
	for _, ext := range opts.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		exts[normalized] = struct{}{}
	}
	return &Scanner{opts: opts, exts: exts}
}

// Scan traverses root depth-first and returns every discovered entry along
// with warnings for paths that could not be read. Entries appear parent
// before children, siblings in ascending name order, so consumers can
// reconstruct the tree incrementally. Symbolic links are recorded but never
// followed. The root must be an existing directory.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &InvalidPathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &InvalidPathError{Path: root, Err: ErrNotDirectory}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &InvalidPathError{Path: root, Err: err}
	}

	result := &Result{
		ScanID: uuid.NewString(),
		Root:   filepath.Clean(abs),
		Stats:  Stats{ByExtension: make(map[string]int)},
	}

	if err := s.walk(ctx, result, result.Root, "", 1); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Scanner) walk(ctx context.Context, result *Result, dir, rel string, depth int) error {
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return nil
	}

	// os.ReadDir returns entries sorted by name, which is exactly the
	// sibling order the output promises.
	entries, err := os.ReadDir(dir)
	if err != nil {
		result.warn(dir, err)
		return nil
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := entry.Name()
		if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		relPath := name
		if rel != "" {
			relPath = filepath.Join(rel, name)
		}
		fullPath := filepath.Join(dir, name)

		info, infoErr := entry.Info()
		if infoErr != nil {
			result.warn(fullPath, infoErr)
			continue
		}

		// entry.IsDir reports lstat type bits, so a symlink to a
		// directory lands in the file branch and is never expanded.
		if entry.IsDir() {
			result.add(Entry{
				RelPath: relPath,
				Name:    name,
				Kind:    KindDir,
				ModTime: info.ModTime(),
				Depth:   depth,
			})
			if err := s.walk(ctx, result, fullPath, relPath, depth+1); err != nil {
				return err
			}
			continue
		}

		if !s.allowed(name) {
			continue
		}
		result.add(Entry{
			RelPath: relPath,
			Name:    name,
			Kind:    KindFile,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Symlink: info.Mode()&os.ModeSymlink != 0,
			Depth:   depth,
		})
	}
	return nil
}

func (s *Scanner) allowed(name string) bool {
	if len(s.exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	_, ok := s.exts[ext]
	return ok
}
