package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrisonrobin/dailies/pkg/lifecycle"
	"github.com/harrisonrobin/dailies/pkg/planner"
	"github.com/harrisonrobin/dailies/pkg/prompt"
	"github.com/harrisonrobin/dailies/pkg/schedule"
	"github.com/harrisonrobin/dailies/pkg/ui"
	"github.com/spf13/cobra"
)

var createOpts struct {
	name       string
	difficulty string
	count      string
	start      string
	dryRun     bool
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a numbered batch of dailies",
	Long: `Create <count> dailies named "<name> 1" .. "<name> <count>", all starting on
the given day and repeating every day of the week. Difficulties are given as a
space separated list of levels (1 Trivial, 2 Easy, 3 Medium, 4 Hard); when the
list is shorter than the count its last level is reused. "random" draws a level
for each daily. Values not passed as flags are prompted for.`,
	Example: `  # Interactive
  dailies create

  # Read 1 (Trivial), Read 2 and Read 3 (Hard), starting June 1st
  dailies create --name Read --difficulty "1 4" --count 3 --start 01/06`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createOpts.name, "name", "n", "", "base task name")
	createCmd.Flags().StringVarP(&createOpts.difficulty, "difficulty", "d", "", `difficulty levels 1-4, space separated, or "random"`)
	createCmd.Flags().StringVar(&createOpts.count, "count", "", "number of dailies to create")
	createCmd.Flags().StringVarP(&createOpts.start, "start", "s", "", "start date as DD/MM (current year)")
	createCmd.Flags().BoolVar(&createOpts.dryRun, "dry-run", false, "print the planned dailies without creating them")
}

// ask returns value if set, otherwise prompts for it.
func ask(value, label string, validate func(string) error) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	return prompter.Ask(label, validate)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	req, err := resolveCreateRequest(a.clock)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(out, "Operation cancelled.")
			return nil
		}
		return createError(err)
	}

	specs, err := a.svc.Plan(req)
	if err != nil {
		return createError(err)
	}
	ui.Specs(out, specs)
	if createOpts.dryRun {
		fmt.Fprintln(out, "Dry run: nothing was sent.")
		return nil
	}

	outcomes, err := a.svc.Create(cmd.Context(), req)
	if err != nil {
		return createError(err)
	}
	ui.CreateReport(out, outcomes)
	return nil
}

func resolveCreateRequest(clock *schedule.Normalizer) (lifecycle.CreateRequest, error) {
	var req lifecycle.CreateRequest

	name, err := ask(createOpts.name, "Enter task name", nil)
	if err != nil {
		return req, err
	}
	req.Name = strings.TrimSpace(name)
	if req.Name == "" {
		return req, planner.ErrEmptyName
	}

	diffInput, err := ask(createOpts.difficulty, `Enter difficulty list (space-separated numbers 1-4 or "random")`, func(s string) error {
		_, err := planner.ParseDifficulties(s)
		return err
	})
	if err != nil {
		return req, err
	}
	if req.Difficulties, err = planner.ParseDifficulties(diffInput); err != nil {
		return req, err
	}

	countInput, err := ask(createOpts.count, "Enter number of tasks", func(s string) error {
		_, err := planner.ParseCount(s)
		return err
	})
	if err != nil {
		return req, err
	}
	if req.Count, err = planner.ParseCount(countInput); err != nil {
		return req, err
	}

	startInput, err := ask(createOpts.start, "Enter start date for tasks (DD/MM)", func(s string) error {
		_, err := clock.ParseDayMonth(s)
		return err
	})
	if err != nil {
		return req, err
	}
	if req.Start, err = clock.ParseDayMonth(startInput); err != nil {
		return req, err
	}
	return req, nil
}

func createError(err error) error {
	switch {
	case errors.Is(err, planner.ErrInvalidDifficulty):
		return fatal(`Invalid difficulty number(s). Use only 1, 2, 3, 4 or "random".`, err)
	case errors.Is(err, planner.ErrInvalidCount):
		return fatal("Invalid number of tasks.", err)
	case errors.Is(err, planner.ErrEmptyName):
		return fatal("Task name cannot be empty.", err)
	case errors.Is(err, schedule.ErrInvalidDateInput):
		return fatal("Invalid start date. Use DD/MM, e.g. 01/06.", err)
	}
	return err
}
