package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/rcloneui/i18nsync/pkg/config"
	"github.com/rcloneui/i18nsync/pkg/locales"
	"github.com/rcloneui/i18nsync/pkg/log"
	"github.com/rcloneui/i18nsync/pkg/metrics"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// newSyncer builds a locales.Syncer from the effective configuration.
func newSyncer(cfg *config.Config) *locales.Syncer {
	return &locales.Syncer{
		Dir:       cfg.I18nDir,
		Indent:    cfg.Indent,
		DryRun:    viper.GetBool("dry_run"),
		Languages: cfg.Languages,
	}
}

// runSync executes a sync, renders the per-file results, and records run
// metrics when a metrics file is configured.
func runSync(command string, cfg *config.Config, fn func(*locales.Syncer) ([]locales.Report, error)) error {
	start := time.Now()
	syncer := newSyncer(cfg)

	reports, err := fn(syncer)
	if err != nil {
		return err
	}

	renderReports(command, reports, syncer.DryRun)
	writeMetrics(command, reports, time.Since(start))
	return nil
}

func renderReports(command string, reports []locales.Report, dryRun bool) {
	title := fmt.Sprintf("%s sync", command)
	if dryRun {
		title += " (dry run)"
	}
	fmt.Println(headerStyle.Render(title))

	if len(reports) == 0 {
		fmt.Println(dimStyle.Render("  no resource files found"))
		return
	}

	totalInserted := 0
	totalMissing := 0
	for _, r := range reports {
		totalInserted += r.Inserted
		totalMissing += len(r.Missing)

		switch {
		case r.Skipped:
			fmt.Printf("  %s %s\n", skippedStyle.Render("skip"), r.Path)
			fmt.Printf("       %s\n", dimStyle.Render(r.Reason))
		case len(r.Missing) == 0:
			fmt.Printf("  %s %s\n", okStyle.Render("  ok"), r.Path)
		case dryRun:
			fmt.Printf("  %s %s (%d missing)\n", changedStyle.Render("miss"), r.Path, len(r.Missing))
		default:
			fmt.Printf("  %s %s (+%d)\n", changedStyle.Render("  up"), r.Path, r.Inserted)
		}
	}

	if dryRun {
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %d missing key(s) across %d file(s), nothing written", totalMissing, len(reports))))
	} else {
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %d key(s) inserted across %d file(s)", totalInserted, len(reports))))
	}
}

func writeMetrics(command string, reports []locales.Report, elapsed time.Duration) {
	path := viper.GetString("metrics_file")
	if path == "" {
		return
	}

	m := metrics.New()
	for _, r := range reports {
		m.FilesScanned.Inc()
		if r.Skipped {
			m.FilesSkipped.Inc()
		}
		if r.Inserted > 0 {
			m.FilesUpdated.Inc()
		}
		m.KeysInserted.WithLabelValues(command).Add(float64(r.Inserted))
	}
	m.RunDuration.Set(elapsed.Seconds())
	m.LastRun.SetToCurrentTime()

	if err := m.WriteTextfile(path); err != nil {
		log.WithField("path", path).WithError(err).Warn("failed to write metrics textfile")
	}
}
