package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"dirscan/internal/scanner"
)

// writeSQLite writes the result into a standalone SQLite database: one
// scan_info row describing the run and one entries row per Entry. Sizes are
// NULL for directories; modification times are stored as Unix nanoseconds.
func writeSQLite(result *scanner.Result, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	// The database is written once and renamed into place, so no journal
	// file may be left alongside the temp path.
	pragmas := []string{
		"PRAGMA journal_mode=MEMORY;",
		"PRAGMA synchronous=OFF;",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `
CREATE TABLE scan_info (
        scan_id TEXT PRIMARY KEY,
        root TEXT NOT NULL,
        generated_at INTEGER NOT NULL,
        file_count INTEGER NOT NULL,
        dir_count INTEGER NOT NULL,
        warning_count INTEGER NOT NULL
);

CREATE TABLE entries (
        path TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        type TEXT NOT NULL,
        size INTEGER,
        mod_time INTEGER NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	_, err = db.Exec(`
INSERT INTO scan_info(scan_id, root, generated_at, file_count, dir_count, warning_count)
VALUES(?, ?, ?, ?, ?, ?)
`, result.ScanID, result.Root, time.Now().UnixNano(),
		result.Stats.Files, result.Stats.Dirs,
		len(result.Warnings)+result.TruncatedWarnings)
	if err != nil {
		return fmt.Errorf("insert scan info: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO entries(path, name, type, size, mod_time) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}

	for _, e := range result.Entries {
		size := sql.NullInt64{}
		if e.Kind == scanner.KindFile {
			size = sql.NullInt64{Int64: e.Size, Valid: true}
		}
		if _, err := stmt.Exec(e.RelPath, e.Name, string(e.Kind), size, e.ModTime.UnixNano()); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("insert entry %s: %w", e.RelPath, err)
		}
	}

	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("close statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return db.Close()
}
