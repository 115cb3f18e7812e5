// Package note parses markdown files into knowledge entries for bulk import.
package note

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Note holds parsed frontmatter and body from a markdown file.
type Note struct {
	Title string `yaml:"title"`
	Body  string // everything after closing ---
}

// Parse extracts YAML frontmatter from markdown content.
// If the content starts with "---\n", it looks for a closing "---" delimiter,
// unmarshals the YAML between them, and sets Body to the remainder.
// No frontmatter returns Note{Body: content}. Unclosed frontmatter returns an error.
func Parse(content string) (*Note, error) {
	if !strings.HasPrefix(content, "---\n") {
		return &Note{Body: content}, nil
	}

	rest := content[4:] // skip opening "---\n"
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return nil, fmt.Errorf("unclosed frontmatter: missing closing ---")
	}

	frontmatter := rest[:idx]
	// Skip "\n---" (4 chars) then optional newline.
	after := rest[idx+4:]
	after = strings.TrimPrefix(after, "\n")

	var n Note
	if err := yaml.Unmarshal([]byte(frontmatter), &n); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	n.Body = after

	return &n, nil
}

// Load reads and parses one markdown file. A note without a frontmatter
// title falls back to the file name (without extension).
func Load(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading note %q: %w", path, err)
	}

	n, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing note %q: %w", path, err)
	}

	if n.Title == "" {
		base := filepath.Base(path)
		n.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return n, nil
}

// ScanDir walks root and returns the paths of all markdown files, sorted.
// Hidden directories (leading dot) are skipped.
func ScanDir(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}
