// Package lenex locates and loads meet-result files. Plain files (.xml,
// .lef) hold one document; .lxf files are zip archives whose .lef or .xml
// entries each hold one document.
package lenex

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/okian/swimtab/internal/xmltree"
)

const archiveExt = ".lxf"

// DefaultPatterns are matched when no pattern is configured.
var DefaultPatterns = []string{"*.xml", "*.lef", "*.lxf"} //nolint:gochecknoglobals // read-only defaults

// Source discovers and loads meet-result files.
type Source struct {
	patterns []string
}

// NewSource creates a Source with the given options.
func NewSource(opts ...Option) *Source {
	s := &Source{patterns: DefaultPatterns}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover returns every file in dir matching one of the patterns, sorted
// by path so that runs over the same directory see the same order.
func (s *Source) Discover(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDir, dir)
	}

	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range s.patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			if fi, err := os.Stat(m); err != nil || fi.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// Load parses every document held by the file at path.
func (s *Source) Load(ctx context.Context, path string) ([]*xmltree.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), archiveExt) {
		return loadArchive(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := xmltree.Parse(f)
	if err != nil {
		return nil, err
	}
	return []*xmltree.Element{root}, nil
}

func loadArchive(ctx context.Context, path string) ([]*xmltree.Element, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	entries := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext == ".lef" || ext == ".xml" {
			entries = append(entries, f)
		}
	}
	if len(entries) == 0 {
		return nil, ErrEmptyArchive
	}
	slices.SortFunc(entries, func(a, b *zip.File) int { return strings.Compare(a.Name, b.Name) })

	docs := make([]*xmltree.Element, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name, err)
		}
		docs = append(docs, root)
	}
	return docs, nil
}

func parseEntry(entry *zip.File) (*xmltree.Element, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return xmltree.Parse(rc)
}
