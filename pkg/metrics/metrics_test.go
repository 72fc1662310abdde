package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.FilesScanned.Inc()
	m.FilesScanned.Inc()
	m.FilesUpdated.Inc()
	m.KeysInserted.WithLabelValues("flags").Add(7)
	m.RunDuration.Set(1.5)

	path := filepath.Join(t.TempDir(), "i18nsync.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	checks := []string{
		"i18nsync_files_scanned_total 2",
		"i18nsync_files_updated_total 1",
		`i18nsync_keys_inserted_total{command="flags"} 7`,
		"i18nsync_run_duration_seconds 1.5",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}

	if strings.Count(out, "# HELP") < 4 {
		t.Error("expected HELP lines in exposition output")
	}
}

func TestWriteTextfileBadDir(t *testing.T) {
	m := New()
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("expected error for unwritable directory")
	}
}
