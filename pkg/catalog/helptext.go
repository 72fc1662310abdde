package catalog

import (
	"regexp"
	"strings"
)

var (
	// Matches a flag definition line: optional short form, then the long
	// name, then whatever follows (type token and/or help text).
	flagLineRE = regexp.MustCompile(`^\s+(?:-\w, )?--([A-Za-z0-9][-A-Za-z0-9._]*)(\s.*)?$`)

	// Column boundaries in help output are runs of two or more spaces.
	columnGapRE = regexp.MustCompile(`\s{2,}`)
)

// ParseHelpFlags extracts flag entries from the plaintext output of
// "rclone help flags". The aligned columns are split on runs of two or more
// spaces, with an optional single-space-separated type token before the gap.
// This is best effort: help text that itself contains a two-space run after
// a type-like token can be truncated. Prefer the options/info RPC when the
// daemon is reachable.
func ParseHelpFlags(text string) map[string]Entry {
	entries := make(map[string]Entry)
	for _, line := range strings.Split(text, "\n") {
		m := flagLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]

		help := ""
		rest := strings.TrimRight(m[2], " \r")
		if rest != "" {
			cols := columnGapRE.Split(rest, 2)
			if len(cols) == 2 {
				help = strings.TrimSpace(cols[1])
			}
			// A single column is the bare type token of a flag without
			// help text; there is nothing to extract from it.
		}

		entries[Key(name)] = Entry{Title: TitleCase(name), Help: help}
	}
	return entries
}
