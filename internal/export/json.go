package export

import (
	"encoding/json"
	"os"
	"time"

	"dirscan/internal/scanner"
)

type jsonEntry struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         *int64 `json:"size"`
	ModifiedTime string `json:"modifiedTime"`
}

type jsonDocument struct {
	ScanID      string      `json:"scanId"`
	Root        string      `json:"root"`
	GeneratedAt string      `json:"generatedAt"`
	Files       int         `json:"files"`
	Directories int         `json:"directories"`
	Entries     []jsonEntry `json:"entries"`
}

// writeJSON writes the result as a JSON document with scan metadata and one
// object per entry. Directory sizes serialize as null.
func writeJSON(result *scanner.Result, path string) error {
	doc := jsonDocument{
		ScanID:      result.ScanID,
		Root:        result.Root,
		GeneratedAt: timestamp(time.Now()),
		Files:       result.Stats.Files,
		Directories: result.Stats.Dirs,
		Entries:     make([]jsonEntry, 0, len(result.Entries)),
	}
	for _, e := range result.Entries {
		je := jsonEntry{
			Path:         e.RelPath,
			Name:         e.Name,
			Type:         string(e.Kind),
			ModifiedTime: timestamp(e.ModTime),
		}
		if e.Kind == scanner.KindFile {
			size := e.Size
			je.Size = &size
		}
		doc.Entries = append(doc.Entries, je)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return f.Close()
}
