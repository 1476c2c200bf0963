package cmd

import (
	"errors"
	"fmt"

	"github.com/harrisonrobin/dailies/pkg/prompt"
	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging and technical error details.
	verbose bool
	// timezone overrides the zone that decides "today".
	timezone string
	version  = "0.1.0"
)

var actions = []string{"create", "complete", "start"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dailies",
	Short: "Manage Habitica dailies and log achieved hours to Notion.",
	Long: `dailies creates batches of Habitica dailies, completes them while crediting
hours to the matching goal in a Notion database, and clears yesterday's
dailies at the start of a new day.

Run without a subcommand to pick an action interactively.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := prompter.Choose("What do you want to do?", actions)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled.")
				return nil
			}
			return fatal(`Invalid input. Please choose "create", "complete" or "start".`, err)
		}
		switch action {
		case "create":
			return runCreate(cmd, nil)
		case "complete":
			return runComplete(cmd, nil)
		default:
			return runStart(cmd, nil)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ue *userError
		if errors.As(err, &ue) {
			HandleFatalError(ue.msg, ue.err)
		}
		HandleFatalError(err.Error(), nil)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/dailies/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA zone deciding the current day (default: local)")
}
