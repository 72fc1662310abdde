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

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Sync flag entries from the rclone rc API",
	Long: `Fetch the flag schema via "rclone rc options/info" from a running rclone
daemon and insert entries missing from each language's flag resource file.`,
	RunE: runFlags,
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	client := rc.NewClient(cfg.RcloneBinary, cfg.RcloneURL)
	log.WithField("url", client.URL()).Info("fetching flags")

	blocks, err := client.OptionsInfo(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ensure rclone is running with 'rclone rcd --rc-no-auth --rc-addr :51900' or similar.")
		return err
	}

	entries := catalog.FlagEntries(blocks)
	log.WithField("flags", len(entries)).Info("fetched flag schema")

	return runSync("flags", cfg, func(s *locales.Syncer) ([]locales.Report, error) {
		return s.SyncFlags(entries, cfg.FlagsFile)
	})
}
