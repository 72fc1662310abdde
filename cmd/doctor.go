package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcloneui/i18nsync/pkg/config"
	"github.com/rcloneui/i18nsync/pkg/rc"
)

// Check is a single doctor probe result.
type Check struct {
	Name    string `json:"name"`
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Icon    string `json:"icon,omitempty"`
}

// DoctorOutput is the machine-readable doctor report.
type DoctorOutput struct {
	Checks []Check `json:"checks"`
	Ready  bool    `json:"ready"`
}

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that rclone and the localization tree are reachable",
	Long: `Doctor checks the environment a sync run depends on: the rclone binary
on PATH, the rc daemon behind the configured URL, the i18n directory, and
the configuration file.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output results in JSON format")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	client := rc.NewClient(cfg.RcloneBinary, cfg.RcloneURL)

	checks := []Check{
		checkBinary(cmd.Context(), client, cfg.RcloneBinary),
		checkDaemon(cmd.Context(), client),
		checkI18nDir(cfg),
		checkConfigFile(),
	}

	// The daemon being down is survivable (helpflags works without it);
	// the binary and the i18n tree are not.
	ready := checks[0].Status && checks[2].Status

	output := DoctorOutput{Checks: checks, Ready: ready}

	if doctorJSON {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal doctor output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(headerStyle.Render("i18nsync doctor"))
	for _, check := range output.Checks {
		fmt.Printf("  %s %s: %s\n", check.Icon, check.Name, check.Message)
	}
	fmt.Println()
	if output.Ready {
		fmt.Println(okStyle.Render("Ready to sync."))
	} else {
		fmt.Println(skippedStyle.Render("Not ready, fix the failing checks above."))
	}
	return nil
}

func checkBinary(ctx context.Context, client *rc.Client, binary string) Check {
	path, err := client.LookPath()
	if err != nil {
		return Check{
			Name:    "rclone binary",
			Status:  false,
			Message: fmt.Sprintf("%s not found in PATH", binary),
			Icon:    "❌",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	version, err := client.Version(ctx)
	if err != nil {
		version = "version unknown"
	}
	return Check{
		Name:    "rclone binary",
		Status:  true,
		Message: fmt.Sprintf("%s (%s)", path, version),
		Icon:    "✅",
	}
}

func checkDaemon(ctx context.Context, client *rc.Client) Check {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		return Check{
			Name:    "rc daemon",
			Status:  false,
			Message: fmt.Sprintf("%s not answering (start with 'rclone rcd --rc-no-auth --rc-addr :51900')", client.URL()),
			Icon:    "⚠️",
		}
	}
	return Check{
		Name:    "rc daemon",
		Status:  true,
		Message: client.URL(),
		Icon:    "✅",
	}
}

func checkI18nDir(cfg *config.Config) Check {
	entries, err := os.ReadDir(cfg.I18nDir)
	if err != nil {
		return Check{
			Name:    "i18n directory",
			Status:  false,
			Message: fmt.Sprintf("not found at %s", cfg.I18nDir),
			Icon:    "❌",
		}
	}

	languages := 0
	files := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		languages++
		for _, name := range []string{cfg.FlagsFile, cfg.ProvidersFile} {
			if _, err := os.Stat(filepath.Join(cfg.I18nDir, e.Name(), name)); err == nil {
				files++
			}
		}
	}
	return Check{
		Name:    "i18n directory",
		Status:  languages > 0,
		Message: fmt.Sprintf("%s (%d language(s), %d resource file(s))", cfg.I18nDir, languages, files),
		Icon:    "✅",
	}
}

func checkConfigFile() Check {
	path := viper.ConfigFileUsed()
	if path == "" {
		return Check{
			Name:    "config file",
			Status:  false,
			Message: "none found, using defaults (run 'i18nsync init' to create one)",
			Icon:    "ℹ️",
		}
	}

	if _, err := config.LoadConfig(path); err != nil {
		return Check{
			Name:    "config file",
			Status:  false,
			Message: fmt.Sprintf("%s: %v", path, err),
			Icon:    "❌",
		}
	}
	return Check{
		Name:    "config file",
		Status:  true,
		Message: path,
		Icon:    "✅",
	}
}
