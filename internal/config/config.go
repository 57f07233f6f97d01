package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

// Config captures runtime configuration for the dirscan application.
type Config struct {
	// Root is the directory to scan.
	Root string

	// Output is the export destination path; empty disables export.
	Output string

	// Format names the export format (csv, excel, json, sqlite). Empty
	// means infer from the Output extension.
	Format string

	// MaxDepth limits traversal depth; 0 means unlimited.
	MaxDepth int

	// IncludeHidden includes dot-prefixed files and directories.
	IncludeHidden bool

	// Extensions restricts emitted files to these extensions.
	Extensions []string

	// Tree prints the scanned tree to stdout.
	Tree bool

	// Summary prints scan statistics to stdout.
	Summary bool

	// Quiet suppresses per-path warning logs.
	Quiet bool
}

// FromFlags parses configuration from command line flags. It should be
// called by the main package to construct the initial configuration for
// the application.
func FromFlags() (Config, error) {
	var cfg Config
	var extensions string

	flag.StringVar(&cfg.Root, "root", ".", "directory to scan")
	flag.StringVar(&cfg.Output, "out", "", "export destination path (empty disables export)")
	flag.StringVar(&cfg.Format, "format", "", "export format: csv, excel, json or sqlite (default: infer from -out)")
	flag.IntVar(&cfg.MaxDepth, "max-depth", 0, "maximum traversal depth, 0 for unlimited")
	flag.BoolVar(&cfg.IncludeHidden, "hidden", false, "include hidden files and directories")
	flag.StringVar(&extensions, "ext", "", "comma separated list of file extensions to include")
	flag.BoolVar(&cfg.Tree, "tree", false, "print the scanned tree")
	flag.BoolVar(&cfg.Summary, "summary", false, "print scan statistics")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "suppress per-path warnings")
	flag.Parse()

	cfg.Extensions = SplitExtensions(extensions)
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize validates the configuration and resolves paths to cleaned
// absolute form.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("scan root cannot be empty")
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolve scan root %q: %w", c.Root, err)
	}
	c.Root = filepath.Clean(abs)

	if c.Output != "" {
		abs, err := filepath.Abs(c.Output)
		if err != nil {
			return fmt.Errorf("resolve output path %q: %w", c.Output, err)
		}
		c.Output = filepath.Clean(abs)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Format != "" && c.Output == "" {
		return errors.New("-format requires -out")
	}
	return nil
}

// SplitExtensions parses a comma separated extension list, dropping empty
// items and surrounding whitespace.
func SplitExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	extensions := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		extensions = append(extensions, trimmed)
	}
	return extensions
}
