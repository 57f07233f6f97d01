// Package render turns a scan result into terminal output: an indented
// tree of the discovered entries and a statistics summary.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"dirscan/internal/scanner"
)

// Tree prints the scan result as an indented tree. Directories get a
// trailing slash, symbolic links a trailing "@", and files their humanized
// size. The depth-first entry order means plain indentation reconstructs
// the hierarchy.
func Tree(w io.Writer, result *scanner.Result) error {
	if _, err := fmt.Fprintln(w, result.Root); err != nil {
		return err
	}
	for _, e := range result.Entries {
		indent := strings.Repeat("  ", e.Depth-1)
		var err error
		switch {
		case e.Kind == scanner.KindDir:
			_, err = fmt.Fprintf(w, "%s%s/\n", indent, e.Name)
		case e.Symlink:
			_, err = fmt.Fprintf(w, "%s%s@\n", indent, e.Name)
		default:
			_, err = fmt.Fprintf(w, "%s%s (%s)\n", indent, e.Name, humanize.Bytes(uint64(e.Size)))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// summaryTopExtensions caps how many extensions Summary lists.
const summaryTopExtensions = 10

// Summary prints totals and the most common file extensions.
func Summary(w io.Writer, result *scanner.Result) error {
	stats := result.Stats
	_, err := fmt.Fprintf(w, "scan %s of %s\nfiles: %d (%s)\ndirectories: %d\n",
		result.ScanID, result.Root, stats.Files, humanize.Bytes(uint64(stats.TotalBytes)), stats.Dirs)
	if err != nil {
		return err
	}
	if n := len(result.Warnings) + result.TruncatedWarnings; n > 0 {
		if _, err := fmt.Fprintf(w, "skipped: %d\n", n); err != nil {
			return err
		}
	}
	if len(stats.ByExtension) == 0 {
		return nil
	}

	type extCount struct {
		ext   string
		count int
	}
	counts := make([]extCount, 0, len(stats.ByExtension))
	for ext, count := range stats.ByExtension {
		if ext == "" {
			ext = "(none)"
		}
		counts = append(counts, extCount{ext: ext, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].ext < counts[j].ext
	})
	if len(counts) > summaryTopExtensions {
		counts = counts[:summaryTopExtensions]
	}

	if _, err := fmt.Fprintln(w, "top extensions:"); err != nil {
		return err
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "  %-10s %d\n", c.ext, c.count); err != nil {
			return err
		}
	}
	return nil
}
