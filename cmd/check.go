package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcloneui/i18nsync/pkg/catalog"
	"github.com/rcloneui/i18nsync/pkg/locales"
	"github.com/rcloneui/i18nsync/pkg/rc"
)

// CheckOutput is the machine-readable result of a check run.
type CheckOutput struct {
	Flags     []locales.Report `json:"flags"`
	Providers []locales.Report `json:"providers"`
	Summary   CheckSummary     `json:"summary"`
}

type CheckSummary struct {
	MissingKeys int  `json:"missing_keys"`
	FilesBehind int  `json:"files_behind"`
	UpToDate    bool `json:"up_to_date"`
}

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report resource files that are behind the rclone schema",
	Long: `Fetch both the flag and provider schema and report, per language file,
which keys are missing. Nothing is written; use this in CI or before a
translation pass.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output results in JSON format")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	client := rc.NewClient(cfg.RcloneBinary, cfg.RcloneURL)

	blocks, err := client.OptionsInfo(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ensure rclone is running with 'rclone rcd --rc-no-auth --rc-addr :51900' or similar.")
		return err
	}
	providers, err := client.Providers(cmd.Context())
	if err != nil {
		return err
	}

	syncer := newSyncer(cfg)
	syncer.DryRun = true

	flagReports, err := syncer.SyncFlags(catalog.FlagEntries(blocks), cfg.FlagsFile)
	if err != nil {
		return err
	}
	providerReports, err := syncer.SyncProviders(catalog.ProviderEntries(providers), cfg.ProvidersFile)
	if err != nil {
		return err
	}

	output := CheckOutput{
		Flags:     flagReports,
		Providers: providerReports,
	}
	for _, r := range append(append([]locales.Report{}, flagReports...), providerReports...) {
		output.Summary.MissingKeys += len(r.Missing)
		if len(r.Missing) > 0 {
			output.Summary.FilesBehind++
		}
	}
	output.Summary.UpToDate = output.Summary.MissingKeys == 0

	if checkJSON {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal check output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	renderReports("flags", flagReports, true)
	fmt.Println()
	renderReports("providers", providerReports, true)
	fmt.Println()
	if output.Summary.UpToDate {
		fmt.Println(okStyle.Render("All resource files are up to date."))
	} else {
		fmt.Println(changedStyle.Render(fmt.Sprintf(
			"%d file(s) behind the schema, %d key(s) missing. Run 'i18nsync flags' and 'i18nsync providers' to update.",
			output.Summary.FilesBehind, output.Summary.MissingKeys)))
	}
	return nil
}
