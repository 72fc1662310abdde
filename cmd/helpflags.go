package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rcloneui/i18nsync/pkg/catalog"
	"github.com/rcloneui/i18nsync/pkg/locales"
	"github.com/rcloneui/i18nsync/pkg/log"
	"github.com/rcloneui/i18nsync/pkg/rc"
)

var helpflagsCmd = &cobra.Command{
	Use:   "helpflags",
	Short: "Sync flag entries parsed from 'rclone help flags' output",
	Long: `Parse the plaintext output of "rclone help flags" and insert entries
missing from each language's flag resource file. This works without a
running rclone daemon, but the column parsing is best effort; prefer the
"flags" command when the rc API is reachable.`,
	RunE: runHelpFlags,
}

func init() {
	rootCmd.AddCommand(helpflagsCmd)
}

func runHelpFlags(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	client := rc.NewClient(cfg.RcloneBinary, cfg.RcloneURL)
	log.Info("parsing rclone help flags output")

	text, err := client.HelpFlags(cmd.Context())
	if err != nil {
		return err
	}

	entries := catalog.ParseHelpFlags(text)
	log.WithField("flags", len(entries)).Info("parsed flag help output")

	return runSync("helpflags", cfg, func(s *locales.Syncer) ([]locales.Report, error) {
		return s.SyncFlags(entries, cfg.FlagsFile)
	})
}
