// Package locales walks the per-language localization directories, diffs
// the resource files against the upstream schema, and splices missing
// entries into them through the text patcher.
package locales

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rcloneui/i18nsync/pkg/catalog"
	"github.com/rcloneui/i18nsync/pkg/log"
	"github.com/rcloneui/i18nsync/pkg/patch"
)

// Syncer applies upstream entries to the resource files under Dir.
// Processing is sequential; a malformed file is skipped, not fatal.
type Syncer struct {
	// Dir is the i18n root containing one subdirectory per language.
	Dir string
	// Indent is the indentation width of the resource files.
	Indent int
	// DryRun computes reports without writing any file.
	DryRun bool
	// Languages restricts processing to the listed codes (empty = all).
	Languages []string
}

// Report describes what happened to a single resource file.
type Report struct {
	Language string   `json:"language"`
	Path     string   `json:"path"`
	Missing  []string `json:"missing,omitempty"`
	Inserted int      `json:"inserted"`
	Skipped  bool     `json:"skipped,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// SyncFlags patches the flat flag resource file in every language
// directory with the entries missing from it.
func (s *Syncer) SyncFlags(entries map[string]catalog.Entry, filename string) ([]Report, error) {
	return s.walk(filename, func(lang, path string) Report {
		return s.syncFlagsFile(lang, path, entries)
	})
}

// SyncProviders patches the nested provider resource file in every language
// directory. Options missing from an existing provider object are spliced
// into that object; providers missing entirely are spliced into the
// top-level "providers" object.
func (s *Syncer) SyncProviders(providers map[string]map[string]catalog.Entry, filename string) ([]Report, error) {
	return s.walk(filename, func(lang, path string) Report {
		return s.syncProvidersFile(lang, path, providers)
	})
}

// walk runs fn for the given resource file in each language directory that
// has one.
func (s *Syncer) walk(filename string, fn func(lang, path string) Report) ([]Report, error) {
	langs, err := s.languages()
	if err != nil {
		return nil, err
	}

	var reports []Report
	for _, lang := range langs {
		path := filepath.Join(s.Dir, lang, filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		log.WithFields(map[string]interface{}{
			"language": lang,
			"path":     path,
		}).Debug("checking resource file")
		reports = append(reports, fn(lang, path))
	}
	return reports, nil
}

// languages lists the language subdirectories, honoring the filter.
func (s *Syncer) languages() ([]string, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("i18n directory not found at %s: %w", s.Dir, err)
	}

	var langs []string
	for _, e := range dirEntries {
		if !e.IsDir() {
			continue
		}
		if len(s.Languages) > 0 && !contains(s.Languages, e.Name()) {
			continue
		}
		langs = append(langs, e.Name())
	}
	return langs, nil
}

func (s *Syncer) syncFlagsFile(lang, path string, entries map[string]catalog.Entry) Report {
	report := Report{Language: lang, Path: path}

	content, existing, err := loadResource(path)
	if err != nil {
		log.WithField("path", path).WithError(err).Warn("skipping invalid or missing file")
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}

	var missing []string
	for key := range entries {
		if _, ok := existing[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	report.Missing = missing

	if len(missing) == 0 {
		log.WithField("path", path).Debug("no missing keys")
		return report
	}

	anchor := patch.LastBrace(content)
	if anchor < 0 {
		log.WithField("path", path).Warn("no closing brace found, skipping")
		report.Skipped = true
		report.Reason = "no closing brace"
		return report
	}

	var blocks strings.Builder
	for _, key := range missing {
		block, err := patch.FormatEntryBlock(key, entries[key], s.Indent, s.Indent)
		if err != nil {
			report.Skipped = true
			report.Reason = err.Error()
			return report
		}
		blocks.WriteString(block)
	}

	updated, err := patch.InsertBefore(content, anchor, blocks.String())
	if err != nil {
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}

	return s.finish(report, path, updated, len(missing))
}

func (s *Syncer) syncProvidersFile(lang, path string, providers map[string]map[string]catalog.Entry) Report {
	report := Report{Language: lang, Path: path}

	content, err := readFile(path)
	if err != nil {
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}

	var doc struct {
		Providers map[string]map[string]json.RawMessage `json:"providers"`
	}
	if err := json.Unmarshal([]byte(patch.Sanitize(content)), &doc); err != nil {
		log.WithField("path", path).WithError(err).Warn("skipping invalid file")
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}
	if doc.Providers == nil {
		log.WithField("path", path).Warn("no providers object, skipping")
		report.Skipped = true
		report.Reason = "no providers object"
		return report
	}

	// Provider objects sit one level below "providers", their options one
	// further down.
	providerIndent := 2 * s.Indent
	optionIndent := 3 * s.Indent

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	inserted := 0
	for _, name := range names {
		upstream := providers[name]

		existing, ok := doc.Providers[name]
		if !ok {
			block, err := patch.FormatEntryBlock(name, upstream, providerIndent, s.Indent)
			if err != nil {
				log.WithField("provider", name).WithError(err).Warn("failed to render provider, skipping")
				continue
			}
			_, end, err := patch.ObjectBounds(content, "providers")
			if err != nil {
				log.WithField("path", path).WithError(err).Warn("could not locate providers object, skipping")
				break
			}
			content, err = patch.InsertBefore(content, end, block)
			if err != nil {
				log.WithField("provider", name).WithError(err).Warn("failed to insert provider")
				continue
			}
			for opt := range upstream {
				report.Missing = append(report.Missing, name+"."+opt)
			}
			inserted += len(upstream)
			log.WithFields(map[string]interface{}{
				"path":     path,
				"provider": name,
				"options":  len(upstream),
			}).Info("inserted new provider")
			continue
		}

		var missingOpts []string
		for opt := range upstream {
			if _, ok := existing[opt]; !ok {
				missingOpts = append(missingOpts, opt)
			}
		}
		if len(missingOpts) == 0 {
			continue
		}
		sort.Strings(missingOpts)

		_, end, err := patch.ObjectBounds(content, name)
		if err != nil {
			log.WithFields(map[string]interface{}{
				"path":     path,
				"provider": name,
			}).WithError(err).Warn("could not locate provider in text, skipping")
			continue
		}

		var blocks strings.Builder
		for _, opt := range missingOpts {
			block, err := patch.FormatEntryBlock(opt, upstream[opt], optionIndent, s.Indent)
			if err != nil {
				log.WithField("option", opt).WithError(err).Warn("failed to render option, skipping")
				continue
			}
			blocks.WriteString(block)
		}
		if blocks.Len() == 0 {
			continue
		}

		content, err = patch.InsertBefore(content, end, blocks.String())
		if err != nil {
			log.WithField("provider", name).WithError(err).Warn("failed to insert options")
			continue
		}
		for _, opt := range missingOpts {
			report.Missing = append(report.Missing, name+"."+opt)
		}
		inserted += len(missingOpts)
	}

	sort.Strings(report.Missing)
	if inserted == 0 {
		log.WithField("path", path).Debug("no missing keys")
		return report
	}
	return s.finish(report, path, content, inserted)
}

// finish writes the patched content unless this is a dry run.
func (s *Syncer) finish(report Report, path, content string, inserted int) Report {
	report.Inserted = inserted
	if s.DryRun {
		log.WithFields(map[string]interface{}{
			"path":    path,
			"missing": inserted,
		}).Info("dry run, not writing")
		report.Inserted = 0
		return report
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		log.WithField("path", path).WithError(err).Error("failed to write file")
		report.Skipped = true
		report.Reason = err.Error()
		report.Inserted = 0
		return report
	}

	log.WithFields(map[string]interface{}{
		"path":     path,
		"inserted": inserted,
	}).Info("updated resource file")
	return report
}

// loadResource reads a flat resource file and parses its top-level keys.
// Marker comments and trailing commas from earlier runs are stripped before
// parsing so already-patched files load cleanly.
func loadResource(path string) (string, map[string]json.RawMessage, error) {
	content, err := readFile(path)
	if err != nil {
		return "", nil, err
	}

	existing := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(patch.Sanitize(content)), &existing); err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return content, existing, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
