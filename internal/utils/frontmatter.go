package utils

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the optional YAML header of an imported markdown file
type Frontmatter struct {
	Title   string `yaml:"title"`
	DocType string `yaml:"doc_type"`
}

// ParseFrontmatter splits optional YAML frontmatter from markdown content.
// Expected format:
//
//	---
//	title: Warrior II
//	doc_type: asana
//	---
//	## Sanskrit Name
//
// Content without a leading "---" line has no frontmatter and is returned whole.
func ParseFrontmatter(content []byte) (*Frontmatter, string, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return &Frontmatter{}, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))

	closingDelim := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closingDelim = i
			break
		}
	}
	if closingDelim == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var fm Frontmatter
	yamlContent := bytes.Join(lines[1:closingDelim], []byte("\n"))
	if err := yaml.Unmarshal(yamlContent, &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := string(bytes.Join(lines[closingDelim+1:], []byte("\n")))
	return &fm, body, nil
}
