package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2tex/internal/dateutil"
	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// ErrFrontMatter indicates the YAML header could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// frontMatterDelimiter opens and closes the YAML header.
const frontMatterDelimiter = "---"

// FrontMatter holds the document metadata read from the YAML header.
// Values are inserted into the skeleton as is, without escaping.
type FrontMatter struct {
	Title    string
	Subtitle string
	Author   string
	Date     string

	// Fields holds every top-level key, normalized to lower case with
	// hyphens replaced by underscores. Title, Subtitle, Author and Date
	// are also present here.
	Fields map[string]string
}

// Get returns the value of a normalized key and whether it is set and non-empty.
func (fm FrontMatter) Get(key string) (string, bool) {
	v, ok := fm.Fields[normalizeKey(key)]
	return v, ok && v != ""
}

// SplitFrontMatter separates a leading YAML header from the Markdown body.
// Content without a header yields empty metadata and the content unchanged.
// Expects line endings already normalized to \n.
// The now parameter resolves "date: auto" values; it allows injecting a
// fixed time for testing.
func SplitFrontMatter(content string, now time.Time) (FrontMatter, string, error) {
	header, body, found := cutFrontMatter(content)
	if !found {
		return FrontMatter{Fields: map[string]string{}}, content, nil
	}

	raw, err := yamlutil.UnmarshalMapping([]byte(header))
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	fm := FrontMatter{Fields: make(map[string]string, len(raw))}
	for key, value := range raw {
		key = normalizeKey(key)
		if !isScalar(value) {
			// Lists and maps (tags, aliases) have no place in the preamble.
			if _, known := documentKeys[key]; known {
				return FrontMatter{}, "", fmt.Errorf("%w: %s: expected a scalar, got %T", ErrFrontMatter, key, value)
			}
			continue
		}
		var text string
		if s, isString := value.(string); isString && key != "date" {
			text = s
		} else if text, err = dateutil.FromYAML(value, now); err != nil {
			return FrontMatter{}, "", fmt.Errorf("%w: %s: %v", ErrFrontMatter, key, err)
		}
		fm.Fields[key] = text
	}

	fm.Title = fm.Fields["title"]
	fm.Subtitle = fm.Fields["subtitle"]
	fm.Author = fm.Fields["author"]
	fm.Date = fm.Fields["date"]
	return fm, body, nil
}

// cutFrontMatter splits "---\n<yaml>\n---\n<body>". The closing delimiter
// may also be "...", as YAML allows, and may end the content.
func cutFrontMatter(content string) (header, body string, found bool) {
	rest, ok := strings.CutPrefix(content, frontMatterDelimiter+"\n")
	if !ok {
		return "", content, false
	}

	offset := 0
	for offset <= len(rest) {
		end := strings.IndexByte(rest[offset:], '\n')
		var line string
		if end == -1 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+end]
		}
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == frontMatterDelimiter || trimmed == "..." {
			header = rest[:offset]
			if end == -1 {
				return header, "", true
			}
			return header, rest[offset+end+1:], true
		}
		if end == -1 {
			break
		}
		offset += end + 1
	}
	return "", content, false
}

// normalizeKey folds "Teaching-Class" and "teaching_class" to one spelling.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// documentKeys are the keys the skeleton and header read directly.
var documentKeys = map[string]struct{}{
	"title":    {},
	"subtitle": {},
	"author":   {},
	"date":     {},
}

// isScalar reports whether v is a YAML scalar (or null).
func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, map[any]any, []any:
		return false
	}
	return true
}
