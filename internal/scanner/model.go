package scanner

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies an Entry as a regular file or a directory.
type Kind string

const (
	// KindFile marks files, including symbolic links, which are recorded
	// from their own lstat data and never followed.
	KindFile Kind = "File"
	// KindDir marks directories.
	KindDir Kind = "Directory"
)

// Entry describes a single file or directory discovered during a scan.
type Entry struct {
	// RelPath is the path relative to the scan root.
	RelPath string
	// Name is the base name of the file or directory.
	Name string
	// Kind is either KindFile or KindDir.
	Kind Kind
	// Size is the byte size for files. It carries no meaning for
	// directories, which render as a placeholder on export.
	Size int64
	// ModTime is the last modification time reported by the filesystem.
	ModTime time.Time
	// Symlink is true when the entry is a symbolic link.
	Symlink bool
	// Depth is the traversal depth; immediate children of the root are at 1.
	Depth int
}

// Warning records a path that was skipped during a scan and why.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Path, w.Err)
}

// maxWarnings bounds the warning list per scan. Overflow is counted in
// Result.TruncatedWarnings rather than dropped silently.
const maxWarnings = 1024

// Stats aggregates counts collected while scanning.
type Stats struct {
	Files       int
	Dirs        int
	TotalBytes  int64
	ByExtension map[string]int
}

// Result is the outcome of one scan invocation.
type Result struct {
	// ScanID uniquely identifies this scan run.
	ScanID string
	// Root is the absolute path of the scanned directory.
	Root string
	// Entries lists every discovered file and directory in depth-first
	// order, parents before children, siblings sorted by name ascending.
	Entries []Entry
	// Warnings lists paths skipped due to per-entry errors, capped at
	// maxWarnings.
	Warnings []Warning
	// TruncatedWarnings counts warnings dropped once the cap was reached.
	TruncatedWarnings int
	Stats             Stats
}

func (r *Result) add(e Entry) {
	r.Entries = append(r.Entries, e)
	switch e.Kind {
	case KindDir:
		r.Stats.Dirs++
	default:
		r.Stats.Files++
		r.Stats.TotalBytes += e.Size
		r.Stats.ByExtension[strings.ToLower(filepath.Ext(e.Name))]++
	}
}

func (r *Result) warn(path string, err error) {
	if len(r.Warnings) >= maxWarnings {
		r.TruncatedWarnings++
		return
	}
	r.Warnings = append(r.Warnings, Warning{Path: path, Err: err})
}
