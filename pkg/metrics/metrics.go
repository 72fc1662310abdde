// Package metrics records sync run statistics on a private Prometheus
// registry and writes them in text exposition format for the node exporter
// textfile collector. A one-shot tool has no endpoint to scrape, so the
// textfile route is how its runs show up in monitoring.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/rcloneui/i18nsync/pkg/log"
)

// Metrics holds the per-run collectors.
type Metrics struct {
	registry *prometheus.Registry

	FilesScanned prometheus.Counter
	FilesUpdated prometheus.Counter
	FilesSkipped prometheus.Counter
	KeysInserted *prometheus.CounterVec
	RunDuration  prometheus.Gauge
	LastRun      prometheus.Gauge
}

// New creates a Metrics instance backed by a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		FilesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "i18nsync_files_scanned_total",
			Help: "Resource files examined during the run.",
		}),
		FilesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "i18nsync_files_updated_total",
			Help: "Resource files rewritten with new entries.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "i18nsync_files_skipped_total",
			Help: "Resource files skipped because they were missing or malformed.",
		}),
		KeysInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "i18nsync_keys_inserted_total",
			Help: "Localization keys spliced into resource files.",
		}, []string{"command"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "i18nsync_run_duration_seconds",
			Help: "Wall clock duration of the last run.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "i18nsync_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed run.",
		}),
	}

	registry.MustRegister(
		m.FilesScanned,
		m.FilesUpdated,
		m.FilesSkipped,
		m.KeysInserted,
		m.RunDuration,
		m.LastRun,
	)
	return m
}

// Registry returns the backing registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile gathers the registry and writes it to path in text
// exposition format, via a temp file and rename so a concurrently running
// textfile collector never sees a half-written file.
func (m *Metrics) WriteTextfile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metrics file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move metrics file into place: %w", err)
	}

	log.WithField("path", path).Debug("wrote metrics textfile")
	return nil
}
