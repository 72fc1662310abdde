package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcloneui/i18nsync/pkg/config"
	"github.com/rcloneui/i18nsync/pkg/log"
	"github.com/rcloneui/i18nsync/pkg/rc"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "i18nsync",
	Short: "Synchronize localization resources with the live rclone schema",
	Long: `i18nsync keeps the per-language JSON resource files of the app in step
with the flag and provider schema of rclone. It fetches the current schema
from a running rclone daemon (or the binary's help output), diffs it against
each language's files, and splices missing entries into the files textually,
preserving existing formatting and marking every insertion for translators.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.i18nsync.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("url", rc.DefaultURL, "Rclone RC URL")
	rootCmd.PersistentFlags().String("rclone", "rclone", "Rclone binary name or path")
	rootCmd.PersistentFlags().String("i18n-dir", "", "Root of the per-language localization directories")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Report missing keys without writing any file")
	rootCmd.PersistentFlags().StringSlice("lang", nil, "Restrict processing to the given language codes")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write run metrics to this textfile collector .prom file")

	// Viper keys follow the config file field names; flags keep the short
	// spelling developers type.
	bindings := map[string]string{
		"verbose":       "verbose",
		"rclone_url":    "url",
		"rclone_binary": "rclone",
		"i18n_dir":      "i18n-dir",
		"dry_run":       "dry-run",
		"languages":     "lang",
		"metrics_file":  "metrics-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
		}
	}
}

func initConfig() {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log.InitLogger(os.Stderr, level, true)
	log.SetGlobalField("run_id", uuid.NewString())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		log.WithField("config_file", cfgFile).Debug("using specified config file")
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".i18nsync")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("config_file", viper.ConfigFileUsed()).Debug("loaded configuration file")
	} else {
		log.WithError(err).Debug("no config file found, using defaults")
	}
}

// activeConfig assembles the effective configuration from defaults, the
// config file, and command line flags, in increasing precedence.
func activeConfig() (*config.Config, error) {
	cfg := config.NewDefaultConfig()

	if v := viper.GetString("rclone_url"); v != "" {
		cfg.RcloneURL = v
	}
	if v := viper.GetString("rclone_binary"); v != "" {
		cfg.RcloneBinary = v
	}
	if v := viper.GetString("i18n_dir"); v != "" {
		cfg.I18nDir = v
	}
	if v := viper.GetString("flags_file"); v != "" {
		cfg.FlagsFile = v
	}
	if v := viper.GetString("providers_file"); v != "" {
		cfg.ProvidersFile = v
	}
	if v := viper.GetInt("indent"); v != 0 {
		cfg.Indent = v
	}
	if v := viper.GetStringSlice("languages"); len(v) > 0 {
		cfg.Languages = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
