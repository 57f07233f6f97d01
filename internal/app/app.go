package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"dirscan/internal/config"
	"dirscan/internal/export"
	"dirscan/internal/render"
	"dirscan/internal/scanner"
)

// App ties together configuration, the scanner, and the exporters.
type App struct {
	cfg  config.Config
	scan *scanner.Scanner
	out  io.Writer
}

// New constructs an App using the provided configuration.
func New(cfg config.Config) (*App, error) {
	if cfg.Format != "" {
		if _, err := export.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}

	s := scanner.New(scanner.Options{
		MaxDepth:      cfg.MaxDepth,
		IncludeHidden: cfg.IncludeHidden,
		Extensions:    cfg.Extensions,
	})
	return &App{cfg: cfg, scan: s, out: os.Stdout}, nil
}

// Run performs one scan and writes the requested outputs, honoring context
// cancellation while the scan is in flight.
func (a *App) Run(ctx context.Context) error {
	log.Printf("scanning %s", a.cfg.Root)
	result, err := a.scan.Scan(ctx, a.cfg.Root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", a.cfg.Root, err)
	}

	if !a.cfg.Quiet {
		for _, w := range result.Warnings {
			log.Printf("skipped %s", w)
		}
	}
	if result.TruncatedWarnings > 0 {
		log.Printf("suppressed %d further warnings", result.TruncatedWarnings)
	}
	log.Printf("scan %s finished: %d files, %d directories (%s)",
		result.ScanID, result.Stats.Files, result.Stats.Dirs,
		humanize.Bytes(uint64(result.Stats.TotalBytes)))

	if a.cfg.Tree {
		if err := render.Tree(a.out, result); err != nil {
			return fmt.Errorf("render tree: %w", err)
		}
	}
	if a.cfg.Summary {
		if err := render.Summary(a.out, result); err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
	}

	if a.cfg.Output == "" {
		return nil
	}
	format, err := a.resolveFormat()
	if err != nil {
		return err
	}
	if err := export.Write(result, a.cfg.Output, format); err != nil {
		return err
	}
	log.Printf("wrote %d entries to %s", len(result.Entries), a.cfg.Output)
	return nil
}

func (a *App) resolveFormat() (export.Format, error) {
	if a.cfg.Format != "" {
		return export.ParseFormat(a.cfg.Format)
	}
	return export.FormatForPath(a.cfg.Output)
}
