package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcloneui/i18nsync/internal/version"
)

var checkUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersionString())

		if checkUpdate {
			hasUpdate, latest, err := version.CheckForUpdate()
			switch {
			case err != nil:
				fmt.Printf("Update check failed: %v\n", err)
			case hasUpdate:
				fmt.Printf("Update available: %s (current: %s)\n", latest, version.GetShortVersion())
			default:
				fmt.Println("You are on the latest version.")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&checkUpdate, "check", false, "Check for a newer release")
}
