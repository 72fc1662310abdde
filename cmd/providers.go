package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcloneui/i18nsync/pkg/catalog"
	"github.com/rcloneui/i18nsync/pkg/locales"
	"github.com/rcloneui/i18nsync/pkg/log"
	"github.com/rcloneui/i18nsync/pkg/rc"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Sync provider entries from the rclone rc API",
	Long: `Fetch the backend provider schema via "rclone rc config/providers" and
insert entries missing from each language's provider resource file. Options
missing from known providers are added inside the existing provider object;
providers missing entirely are added whole.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	client := rc.NewClient(cfg.RcloneBinary, cfg.RcloneURL)
	log.WithField("url", client.URL()).Info("fetching providers")

	providers, err := client.Providers(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ensure rclone is running with 'rclone rcd --rc-no-auth --rc-addr :51900' or similar.")
		return err
	}

	entries := catalog.ProviderEntries(providers)
	log.WithField("providers", len(entries)).Info("fetched provider schema")

	return runSync("providers", cfg, func(s *locales.Syncer) ([]locales.Report, error) {
		return s.SyncProviders(entries, cfg.ProvidersFile)
	})
}
