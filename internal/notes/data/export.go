package data

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

var multiUnderscore = regexp.MustCompile(`_+`)

type exportFrontmatter struct {
	ID      string `yaml:"id"`
	Color   string `yaml:"color,omitempty"`
	Pinned  bool   `yaml:"pinned,omitempty"`
	Created string `yaml:"created"`
	Updated string `yaml:"updated,omitempty"`
}

// ExportMarkdown writes every note into dir as a markdown file with YAML
// frontmatter and returns the written paths in input order.
func ExportMarkdown(notes []Note, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		name := UniqueFilename(ToSnakeCase(DisplayTitle(n)), dir)
		path := filepath.Join(dir, name)
		if err := writeMarkdown(n, path); err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeMarkdown(n Note, path string) error {
	var buf bytes.Buffer

	fm := exportFrontmatter{
		ID:      n.ID,
		Pinned:  n.Pinned,
		Created: n.CreatedAt.Format(time.RFC3339),
	}
	if n.Color != ColorDefault {
		fm.Color = string(n.Color)
	}
	if !n.UpdatedAt.IsZero() {
		fm.Updated = n.UpdatedAt.Format(time.RFC3339)
	}

	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}

	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	if n.Title != "" {
		buf.WriteString("# " + n.Title + "\n\n")
	}
	buf.WriteString(n.Content)
	if n.Content != "" && !strings.HasSuffix(n.Content, "\n") {
		buf.WriteString("\n")
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// maxBaseNameBytes keeps exported names, with a _N suffix and .md, well
// under the 255-byte limit of common filesystems.
const maxBaseNameBytes = 100

// ToSnakeCase converts a title to lowercase snake_case
// "My Note Title!" -> "my_note_title"
func ToSnakeCase(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")

	var result strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			result.WriteRune(r)
		}
	}
	s = multiUnderscore.ReplaceAllString(result.String(), "_")
	s = strings.Trim(s, "_")
	if len(s) > maxBaseNameBytes {
		cut := 0
		for i := range s {
			if i > maxBaseNameBytes {
				break
			}
			cut = i
		}
		s = strings.TrimRight(s[:cut], "_")
	}

	if s == "" {
		s = "note"
	}
	return s
}

// UniqueFilename returns base.md, or base_2.md, base_3.md, ... when taken.
func UniqueFilename(base, dir string) string {
	candidate := base + ".md"
	if !fileExists(filepath.Join(dir, candidate)) {
		return candidate
	}
	for i := 2; ; i++ {
		candidate = base + "_" + strconv.Itoa(i) + ".md"
		if !fileExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
