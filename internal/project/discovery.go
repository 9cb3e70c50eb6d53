// Package project collects candidate identifiers from a project tree:
// model file stems from the models directory and column names from
// schema YAML files. The linter core never reads files itself; this
// package is its input collaborator.
package project

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

// Discovery walks a project tree for candidate identifiers.
type Discovery struct {
	// ModelsDir is the directory walked for *.sql model files.
	ModelsDir string

	// SchemaGlobs are doublestar patterns, relative to Root, matching
	// schema YAML files to read column names from.
	SchemaGlobs []string

	// Exclude are doublestar patterns of paths to skip, relative to Root.
	Exclude []string

	// Root anchors relative globs and exclude matching.
	Root string

	Logger *slog.Logger
}

// CollectError is a non-fatal problem with a single file. Unreadable or
// unparseable files never abort discovery.
type CollectError struct {
	Path    string
	Message string
}

// Result holds the collected identifiers and any per-file errors.
type Result struct {
	Items    []lint.Item
	Errors   []CollectError
	Duration time.Duration
}

// HasErrors returns true if any files could not be processed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d identifiers collected (%d file errors) in %s",
		len(r.Items), len(r.Errors), r.Duration.Round(time.Millisecond))
}

// Collect walks the models directory and schema files and returns the
// candidate identifiers in a stable order: model stems first (sorted by
// file path), then schema columns (sorted by file path, document order
// within a file).
func (d *Discovery) Collect() (*Result, error) {
	start := time.Now()
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	result := &Result{}

	if err := d.collectModels(result, logger); err != nil {
		return result, err
	}
	if err := d.collectColumns(result, logger); err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	logger.Info("discovery complete",
		"items", len(result.Items),
		"errors", len(result.Errors),
		"duration", result.Duration)
	return result, nil
}

// collectModels walks ModelsDir for *.sql files and records their stems.
func (d *Discovery) collectModels(result *Result, logger *slog.Logger) error {
	if d.ModelsDir == "" {
		return nil
	}
	if _, err := os.Stat(d.ModelsDir); os.IsNotExist(err) {
		logger.Warn("models directory not found, skipping", "dir", d.ModelsDir)
		return nil
	}

	var items []lint.Item
	err := filepath.WalkDir(d.ModelsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, CollectError{Path: path, Message: err.Error()})
			return nil
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			return nil
		}
		if d.excluded(path) {
			return nil
		}

		stem := strings.TrimSuffix(entry.Name(), ".sql")
		items = append(items, lint.Item{
			Name:     stem,
			Kind:     naming.KindModel,
			FilePath: path,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk models directory: %w", err)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].FilePath < items[j].FilePath })
	result.Items = append(result.Items, items...)
	return nil
}

// collectColumns globs schema files and records their column names.
func (d *Discovery) collectColumns(result *Result, logger *slog.Logger) error {
	var paths []string
	seen := make(map[string]bool)

	for _, pattern := range d.SchemaGlobs {
		if !filepath.IsAbs(pattern) && d.Root != "" {
			pattern = filepath.Join(d.Root, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid schema glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] && !d.excluded(m) {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		schema, err := ParseSchemaFile(path)
		if err != nil {
			logger.Warn("skipping unreadable schema file", "path", path, "error", err)
			result.Errors = append(result.Errors, CollectError{Path: path, Message: err.Error()})
			continue
		}
		for _, model := range schema.Models {
			for _, col := range model.Columns {
				result.Items = append(result.Items, lint.Item{
					Name:     col.Name,
					Kind:     naming.KindColumn,
					FilePath: path,
				})
			}
		}
	}
	return nil
}

// excluded checks a path against the exclude globs.
func (d *Discovery) excluded(path string) bool {
	rel := path
	if d.Root != "" {
		if r, err := filepath.Rel(d.Root, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range d.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
