package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/harrisonrobin/dailies/pkg/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persistent settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loadErr := loadConfig(cmd)
		if cfg == nil {
			return fatal("Could not load configuration.", loadErr)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg.Masked()); err != nil {
			return err
		}
		if loadErr != nil {
			fmt.Fprintln(cmd.OutOrStdout(), loadErr)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a non-secret setting",
	Long: fmt.Sprintf(`Write a setting to the config file. Secrets (API keys and tokens) are read
from the environment or a .env file only.

Keys: %v`, config.Persistable),
	Example: `  dailies config set notion.stats_page_id 1a2b3c
  dailies config set timezone Asia/Tehran`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		if err := config.Save(fs, path, args[0], args[1]); err != nil {
			return fatal("Error saving config: "+err.Error(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
