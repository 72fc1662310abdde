package rc

// Option is a single flag or backend option as reported by the rclone rc
// API. Only the fields the sync needs are decoded; the payloads carry many
// more (defaults, examples, advanced markers).
type Option struct {
	Name string `json:"Name"`
	Help string `json:"Help"`
}

// Provider is a storage backend definition from config/providers.
type Provider struct {
	Name        string   `json:"Name"`
	Description string   `json:"Description"`
	Options     []Option `json:"Options"`
}
