// Package patch implements text-level JSON splicing for localization
// resource files. Files are never round-tripped through a JSON serializer:
// new entries are inserted into the raw text so that existing formatting,
// key order, and previously inserted comment markers survive untouched.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Comment markers wrapped around every inserted fragment. Translators grep
// for these to find untranslated entries; the consuming loader strips them.
const (
	StartMarker = "/////////////////////////////////////// New Key start"
	EndMarker   = "////////////////////////////////////// New key end"
)

// LastBrace returns the index of the rightmost closing brace in content,
// the insertion anchor for appending to the top-level object. Returns -1
// when content has no closing brace.
func LastBrace(content string) int {
	return strings.LastIndexByte(content, '}')
}

// FormatEntryBlock renders a single key/value pair as an indented JSON
// fragment wrapped in the insertion markers. The key is placed at keyIndent
// columns and nested levels advance by step columns, matching the style of
// the surrounding file. The fragment carries a trailing comma; Sanitize
// removes it again if it ends up dangling.
func FormatEntryBlock(key string, value interface{}, keyIndent, step int) (string, error) {
	pad := strings.Repeat(" ", keyIndent)

	body, err := marshalIndent(value, pad, strings.Repeat(" ", step))
	if err != nil {
		return "", fmt.Errorf("failed to render entry %q: %w", key, err)
	}
	keyJSON, err := marshalIndent(key, "", "")
	if err != nil {
		return "", fmt.Errorf("failed to render key %q: %w", key, err)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(pad + StartMarker + "\n")
	b.WriteString(fmt.Sprintf("%s%s: %s,\n", pad, keyJSON, body))
	b.WriteString(pad + EndMarker)
	return b.String(), nil
}

// InsertBefore splices insertion immediately above the closing brace at
// anchor. When the value preceding the brace lacks a trailing comma, one is
// inserted after it and the anchor shifts accordingly. A brace that sits
// alone on its line keeps its line and indentation.
func InsertBefore(content string, anchor int, insertion string) (string, error) {
	if anchor < 0 || anchor >= len(content) || content[anchor] != '}' {
		return "", fmt.Errorf("insertion anchor %d is not a closing brace", anchor)
	}

	// Scan backward over whitespace to the last significant character.
	i := anchor - 1
	needsComma := false
	for i >= 0 {
		c := content[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i--
			continue
		}
		needsComma = c != ',' && c != '{' && c != '['
		break
	}
	if needsComma {
		content = content[:i+1] + "," + content[i+1:]
		anchor++
	}

	spliceAt := anchor
	lineStart := strings.LastIndexByte(content[:anchor], '\n') + 1
	if strings.TrimSpace(content[lineStart:anchor]) == "" {
		spliceAt = lineStart
	}
	return content[:spliceAt] + insertion + "\n" + content[spliceAt:], nil
}

// ObjectBounds locates the object value of the first occurrence of key and
// returns the indices of its opening and matching closing brace. Braces
// inside string literals are ignored while matching, so help text containing
// braces cannot derail the count.
func ObjectBounds(content, key string) (open, end int, err error) {
	marker := `"` + key + `"`
	idx := strings.Index(content, marker)
	for idx >= 0 {
		rest := content[idx+len(marker):]
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		if strings.HasPrefix(trimmed, ":") {
			after := strings.TrimLeft(trimmed[1:], " \t\r\n")
			if strings.HasPrefix(after, "{") {
				open = len(content) - len(after)
				break
			}
		}
		next := strings.Index(content[idx+len(marker):], marker)
		if next < 0 {
			idx = -1
			break
		}
		idx += len(marker) + next
	}
	if idx < 0 {
		return 0, 0, fmt.Errorf("object %q not found", key)
	}

	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(content); i++ {
		c := content[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return open, i, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("unbalanced braces in object %q", key)
}

// Sanitize strips the insertion markers (and any other // line comments
// outside string literals) plus dangling trailing commas, returning text
// that parses as strict JSON again. Loading a previously patched file goes
// through this, which is what makes repeated runs idempotent.
func Sanitize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	inString := false
	escaped := false
	for i := 0; i < len(content); i++ {
		c := content[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case '/':
			if i+1 < len(content) && content[i+1] == '/' {
				for i < len(content) && content[i] != '\n' {
					i++
				}
				if i < len(content) {
					b.WriteByte('\n')
				}
			} else {
				b.WriteByte(c)
			}
		case ',':
			if closerFollows(content, i+1) {
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closerFollows reports whether the next significant character at or after
// pos, skipping whitespace and line comments, closes an object or array.
func closerFollows(content string, pos int) bool {
	for pos < len(content) {
		c := content[pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			pos++
			continue
		}
		if c == '/' && pos+1 < len(content) && content[pos+1] == '/' {
			for pos < len(content) && content[pos] != '\n' {
				pos++
			}
			continue
		}
		return c == '}' || c == ']'
	}
	return false
}

// marshalIndent is json.MarshalIndent without HTML escaping, so help text
// containing angle brackets stays readable.
func marshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
