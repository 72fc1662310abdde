// Package catalog normalizes the flag and provider schema fetched from
// rclone into the key -> {title, help} shape used by the localization
// resource files.
package catalog

import (
	"strings"

	"github.com/rcloneui/i18nsync/pkg/rc"
)

// Entry is a single localizable resource: a display title derived from the
// upstream name plus the upstream help text as the untranslated default.
type Entry struct {
	Title string `json:"title"`
	Help  string `json:"help"`
}

// Key converts an upstream flag name to its canonical resource key.
// options/info names are usually snake_case already, but kebab-case slips
// through for some backends.
func Key(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// TitleCase converts a kebab- or snake-case name to a spaced Title Case
// string, e.g. "buffer-size" -> "Buffer Size".
func TitleCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, " ")
}

// FlagEntries flattens the option blocks returned by options/info into a
// single key -> entry mapping. Block names ("main", "mount", ...) are not
// part of the key; the resource files are flat.
func FlagEntries(blocks map[string][]rc.Option) map[string]Entry {
	entries := make(map[string]Entry)
	for _, options := range blocks {
		for _, opt := range options {
			if opt.Name == "" {
				continue
			}
			entries[Key(opt.Name)] = Entry{
				Title: TitleCase(opt.Name),
				Help:  opt.Help,
			}
		}
	}
	return entries
}

// ProviderEntries converts the provider list from config/providers into the
// two-level provider -> option -> entry mapping mirrored by
// rclone-providers.json.
func ProviderEntries(providers []rc.Provider) map[string]map[string]Entry {
	out := make(map[string]map[string]Entry, len(providers))
	for _, p := range providers {
		if p.Name == "" {
			continue
		}
		options := make(map[string]Entry, len(p.Options))
		for _, opt := range p.Options {
			if opt.Name == "" {
				continue
			}
			options[opt.Name] = Entry{
				Title: TitleCase(opt.Name),
				Help:  opt.Help,
			}
		}
		out[p.Name] = options
	}
	return out
}
