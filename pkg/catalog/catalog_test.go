package catalog

import (
	"testing"

	"github.com/rcloneui/i18nsync/pkg/rc"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"buffer-size", "Buffer Size"},
		{"buffer_size", "Buffer Size"},
		{"use-json-log", "Use Json Log"},
		{"acknowledge_abuse", "Acknowledge Abuse"},
		{"v2-auth", "V2 Auth"},
		{"checksum", "Checksum"},
		{"UPLOAD_CUTOFF", "Upload Cutoff"},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key("buffer-size"); got != "buffer_size" {
		t.Errorf("Key(buffer-size) = %q", got)
	}
	if got := Key("checkers"); got != "checkers" {
		t.Errorf("Key(checkers) = %q", got)
	}
}

func TestFlagEntries(t *testing.T) {
	blocks := map[string][]rc.Option{
		"main": {
			{Name: "buffer-size", Help: "In memory buffer size"},
			{Name: "checkers", Help: "Number of checkers"},
			{Name: "", Help: "nameless, skipped"},
		},
		"mount": {
			{Name: "allow_other", Help: "Allow access to other users"},
		},
	}

	entries := FlagEntries(blocks)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if e := entries["buffer_size"]; e.Title != "Buffer Size" || e.Help != "In memory buffer size" {
		t.Errorf("buffer_size entry wrong: %+v", e)
	}
	if e := entries["allow_other"]; e.Title != "Allow Other" {
		t.Errorf("allow_other entry wrong: %+v", e)
	}
	if _, ok := entries["buffer-size"]; ok {
		t.Error("kebab-case key leaked through")
	}
}

func TestProviderEntries(t *testing.T) {
	providers := []rc.Provider{
		{
			Name:        "drive",
			Description: "Google Drive",
			Options: []rc.Option{
				{Name: "scope", Help: "Comma separated list of scopes"},
				{Name: "", Help: "nameless, skipped"},
			},
		},
		{Name: "", Options: []rc.Option{{Name: "x"}}},
	}

	entries := ProviderEntries(providers)

	if len(entries) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(entries))
	}
	drive := entries["drive"]
	if len(drive) != 1 {
		t.Fatalf("expected 1 option for drive, got %d", len(drive))
	}
	if e := drive["scope"]; e.Title != "Scope" || e.Help != "Comma separated list of scopes" {
		t.Errorf("scope entry wrong: %+v", e)
	}
}
