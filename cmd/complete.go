package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrisonrobin/dailies/pkg/lifecycle"
	"github.com/harrisonrobin/dailies/pkg/prompt"
	"github.com/harrisonrobin/dailies/pkg/ui"
	"github.com/harrisonrobin/dailies/pkg/util"
	"github.com/spf13/cobra"
)

var completeHours string

var completeCmd = &cobra.Command{
	Use:     "complete [number|name]",
	Aliases: []string{"done"},
	Short:   "Complete a due daily and credit its goal",
	Long: `List the dailies that are due and not yet completed, then complete the one
selected by its number in that list or by its exact name (case-insensitive).
The first word of the task name, capitalized, is the Notion goal credited with
the achieved hours; the stats page receives the same amount.`,
	Example: `  dailies complete
  dailies complete 0
  dailies complete "read 2" --hours 1.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
	completeCmd.Flags().StringVar(&completeHours, "hours", "1", "hours to credit (1.5, 90m, 1h30m or PT1H30M)")
}

func runComplete(cmd *cobra.Command, args []string) error {
	hours, err := util.ParseHours(completeHours)
	if err != nil {
		return fatal("Invalid --hours value.", err)
	}

	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	candidates, err := a.svc.Candidates(cmd.Context())
	if err != nil {
		return fatal("Failed to fetch daily tasks.", err)
	}
	if !ui.DueList(out, candidates.Due) {
		return nil
	}

	var selection string
	if len(args) > 0 {
		selection = args[0]
	} else {
		selection, err = prompter.Ask("Which task did you complete? (Enter number or task name)", nil)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(out, "Operation cancelled.")
				return nil
			}
			return err
		}
	}

	res, err := a.svc.Complete(cmd.Context(), candidates, lifecycle.CompleteRequest{
		Selection: strings.TrimSpace(selection),
		Hours:     hours,
	})
	if err != nil {
		if errors.Is(err, lifecycle.ErrTaskNotFound) {
			return fatal("Task not found.", err)
		}
		return err
	}
	ui.CompleteReport(out, res)
	return nil
}
