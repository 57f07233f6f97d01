// Package export serializes scan results into tabular files. All formats
// share a fixed column schema (Path, Name, Type, Size, ModifiedTime) and
// write atomically: output lands in a temp file that is renamed into place
// on success, so a failed export never leaves a partial file behind.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dirscan/internal/scanner"
)

// Format selects an output file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatExcel  Format = "excel"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// ExportError reports a failed export. The destination named the caller's
// target; Err carries the cause.
type ExportError struct {
	Dest string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s: %v", e.Dest, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// header is the fixed column schema shared by every format.
var header = []string{"Path", "Name", "Type", "Size", "ModifiedTime"}

// dirSizePlaceholder renders in the Size column for directory rows.
const dirSizePlaceholder = "-"

// ParseFormat validates a format name. Recognized names are "csv",
// "excel" (or "xlsx"), "json", and "sqlite", case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatExcel), "xlsx":
		return FormatExcel, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatSQLite), "sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown export format %q", name)
	}
}

// FormatForPath infers the format from a destination file extension.
func FormatForPath(dest string) (Format, error) {
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatExcel, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot infer export format from %q", dest)
	}
}

// Write serializes the scan result to dest in the given format.
func Write(result *scanner.Result, dest string, format Format) error {
	if result == nil {
		return &ExportError{Dest: dest, Err: errors.New("nil scan result")}
	}

	var write func(path string) error
	switch format {
	case FormatCSV:
		write = func(path string) error { return writeCSV(result, path) }
	case FormatExcel:
		write = func(path string) error { return writeExcel(result, path) }
	case FormatJSON:
		write = func(path string) error { return writeJSON(result, path) }
	case FormatSQLite:
		write = func(path string) error { return writeSQLite(result, path) }
	default:
		return &ExportError{Dest: dest, Err: fmt.Errorf("unsupported format %q", format)}
	}
	return writeAtomic(dest, write)
}

// writeAtomic runs write against a temp file in the destination directory
// and renames it over dest once the write succeeds.
func writeAtomic(dest string, write func(path string) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return &ExportError{Dest: dest, Err: err}
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &ExportError{Dest: dest, Err: err}
	}

	if err := write(tmpPath); err != nil {
		os.Remove(tmpPath)
		return &ExportError{Dest: dest, Err: err}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return &ExportError{Dest: dest, Err: err}
	}
	return nil
}

func sizeCell(e scanner.Entry) string {
	if e.Kind == scanner.KindDir {
		return dirSizePlaceholder
	}
	return strconv.FormatInt(e.Size, 10)
}

// timestamp renders modification times as RFC 3339 in UTC, keeping exports
// reproducible across machines and locales.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
