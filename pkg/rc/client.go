// Package rc fetches schema metadata from rclone by shelling out to the
// rclone binary, either through its remote-control API ("rclone rc ...")
// against a running daemon, or through plain help output.
package rc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rcloneui/i18nsync/pkg/log"
)

// DefaultURL is the rc endpoint of a locally running "rclone rcd".
const DefaultURL = "http://127.0.0.1:51900"

// Client invokes the rclone binary. It does not keep any connection state;
// every call is a fresh subprocess.
type Client struct {
	binary string
	url    string
}

// NewClient returns a client using the given binary name (or path) and rc
// URL. Empty arguments fall back to "rclone" and DefaultURL.
func NewClient(binary, url string) *Client {
	if binary == "" {
		binary = "rclone"
	}
	if url == "" {
		url = DefaultURL
	}
	return &Client{binary: binary, url: url}
}

// URL returns the rc endpoint this client targets.
func (c *Client) URL() string {
	return c.url
}

// LookPath resolves the configured binary on PATH.
func (c *Client) LookPath() (string, error) {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH, verify it is installed: %w", c.binary, err)
	}
	return path, nil
}

// run executes the binary with the given arguments and returns its stdout.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	path, err := c.LookPath()
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"binary": path,
		"args":   strings.Join(args, " "),
	}).Debug("invoking rclone")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s %s failed: %s", c.binary, strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}

// rcCall performs "rclone rc <op> --rc-no-auth --url <url>".
func (c *Client) rcCall(ctx context.Context, op string) ([]byte, error) {
	out, err := c.run(ctx, "rc", op, "--rc-no-auth", "--url", c.url)
	if err != nil {
		return nil, fmt.Errorf("rc call %s against %s: %w", op, c.url, err)
	}
	return out, nil
}

// OptionsInfo fetches the flag schema via the options/info rc call and
// returns it grouped by option block ("main", "mount", ...).
func (c *Client) OptionsInfo(ctx context.Context) (map[string][]Option, error) {
	out, err := c.rcCall(ctx, "options/info")
	if err != nil {
		return nil, err
	}
	return decodeOptionsInfo(out)
}

// Providers fetches the backend provider schema via config/providers.
func (c *Client) Providers(ctx context.Context) ([]Provider, error) {
	out, err := c.rcCall(ctx, "config/providers")
	if err != nil {
		return nil, err
	}
	return decodeProviders(out)
}

// HelpFlags returns the plaintext output of "rclone help flags". Used as a
// fallback when no rc daemon is running.
func (c *Client) HelpFlags(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "help", "flags")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Version returns the first line of "rclone version" output.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// Ping checks that the rc daemon behind the configured URL answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rcCall(ctx, "rc/noop")
	return err
}

// decodeOptionsInfo parses the options/info payload: an object whose keys
// are block names and whose values are option lists. Non-list values are
// skipped rather than treated as errors.
func decodeOptionsInfo(data []byte) (map[string][]Option, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode options/info response: %w", err)
	}

	blocks := make(map[string][]Option, len(raw))
	for name, value := range raw {
		var options []Option
		if err := json.Unmarshal(value, &options); err != nil {
			continue
		}
		blocks[name] = options
	}
	return blocks, nil
}

// decodeProviders parses the config/providers payload.
func decodeProviders(data []byte) ([]Provider, error) {
	var payload struct {
		Providers []Provider `json:"providers"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode config/providers response: %w", err)
	}
	return payload.Providers, nil
}
