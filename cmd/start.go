package cmd

import (
	"fmt"

	"github.com/harrisonrobin/dailies/pkg/ui"
	"github.com/spf13/cobra"
)

var startDryRun bool

var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"rollover", "new-day"},
	Short:   "Start a new day by deleting yesterday's dailies",
	Long: `Delete every daily whose start date is exactly yesterday. Dailies from
earlier days and from today are left alone.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&startDryRun, "dry-run", false, "list yesterday's dailies without deleting them")
}

func runStart(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.StyleHeader.Render("Starting a new day..."))
	a.log.Debug("rollover", "yesterday", a.clock.YesterdayStart())

	if startDryRun {
		expired, err := a.svc.Expired(cmd.Context())
		if err != nil {
			return fatal("Error while starting a new day.", err)
		}
		ui.Expired(out, expired)
		return nil
	}

	outcomes, err := a.svc.Rollover(cmd.Context())
	if err != nil {
		return fatal("Error while starting a new day.", err)
	}
	ui.RolloverReport(out, outcomes)
	return nil
}
