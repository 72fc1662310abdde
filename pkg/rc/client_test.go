package rc

import "testing"

func TestDecodeOptionsInfo(t *testing.T) {
	payload := []byte(`{
		"main": [
			{"Name": "buffer_size", "Help": "In memory buffer size", "Default": 16777216, "Advanced": true},
			{"Name": "checkers", "Help": "Number of checkers to run in parallel"}
		],
		"mount": [
			{"Name": "allow_other", "Help": "Allow access to other users"}
		],
		"metadata": {"not": "a list"}
	}`)

	blocks, err := decodeOptionsInfo(payload)
	if err != nil {
		t.Fatalf("decodeOptionsInfo returned error: %v", err)
	}

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks (non-list values skipped), got %d", len(blocks))
	}
	if len(blocks["main"]) != 2 {
		t.Errorf("expected 2 main options, got %d", len(blocks["main"]))
	}
	if blocks["main"][0].Name != "buffer_size" || blocks["main"][0].Help != "In memory buffer size" {
		t.Errorf("unexpected first option: %+v", blocks["main"][0])
	}
	if _, ok := blocks["metadata"]; ok {
		t.Error("non-list block should have been skipped")
	}
}

func TestDecodeOptionsInfoInvalid(t *testing.T) {
	if _, err := decodeOptionsInfo([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeProviders(t *testing.T) {
	payload := []byte(`{
		"providers": [
			{
				"Name": "drive",
				"Description": "Google Drive",
				"Options": [
					{"Name": "scope", "Help": "Comma separated list of scopes"},
					{"Name": "service_account_file", "Help": "Service Account Credentials JSON file path"}
				]
			},
			{"Name": "memory", "Description": "In memory object storage system", "Options": []}
		]
	}`)

	providers, err := decodeProviders(payload)
	if err != nil {
		t.Fatalf("decodeProviders returned error: %v", err)
	}

	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name != "drive" || len(providers[0].Options) != 2 {
		t.Errorf("unexpected drive provider: %+v", providers[0])
	}
	if providers[1].Name != "memory" || len(providers[1].Options) != 0 {
		t.Errorf("unexpected memory provider: %+v", providers[1])
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "")
	if c.binary != "rclone" {
		t.Errorf("default binary = %q", c.binary)
	}
	if c.URL() != DefaultURL {
		t.Errorf("default URL = %q", c.URL())
	}

	c = NewClient("/opt/rclone", "http://localhost:5572")
	if c.binary != "/opt/rclone" || c.URL() != "http://localhost:5572" {
		t.Errorf("explicit client wrong: %+v", c)
	}
}
