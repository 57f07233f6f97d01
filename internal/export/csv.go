package export

import (
	"encoding/csv"
	"os"

	"dirscan/internal/scanner"
)

// writeCSV writes the result as UTF-8 CSV with a header row. Quoting of
// fields containing delimiters, quotes, or newlines follows RFC 4180 via
// the stdlib writer.
func writeCSV(result *scanner.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range result.Entries {
		row := []string{e.RelPath, e.Name, string(e.Kind), sizeCell(e), timestamp(e.ModTime)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
