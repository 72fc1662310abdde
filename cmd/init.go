package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcloneui/i18nsync/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Create a .i18nsync.yaml configuration file with the defaults the app
repository uses. Edit it to point at a different i18n tree or rclone
endpoint.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("output", "o", ".i18nsync.yaml", "Output configuration file path")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(outputPath); err == nil && !initForce {
		return fmt.Errorf("configuration file %s already exists, use --force to overwrite", outputPath)
	}

	cfg := config.NewDefaultConfig()
	if err := cfg.SaveConfig(outputPath); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", outputPath)
	return nil
}
