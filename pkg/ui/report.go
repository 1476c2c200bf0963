// Package ui renders flow results for the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/harrisonrobin/dailies/pkg/lifecycle"
	"github.com/harrisonrobin/dailies/pkg/model"
	"github.com/harrisonrobin/dailies/pkg/planner"
)

func ok(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Icon("✔", StyleSuccess), fmt.Sprintf(format, args...))
}

func fail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Icon("✘", StyleError), fmt.Sprintf(format, args...))
}

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Icon("!", StyleWarning), fmt.Sprintf(format, args...))
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// Specs lists planned dailies before they are sent.
func Specs(w io.Writer, specs []model.TaskSpec) {
	fmt.Fprintln(w, StyleHeader.Render("Dailies to send to Habitica:"))
	for _, s := range specs {
		fmt.Fprintf(w, "  %s  %s\n", s.Text, StyleSubtle.Render(fmt.Sprintf(
			"priority %s (%s), starts %s, %s",
			hours(s.Priority), planner.Difficulty(s.Difficulty), s.StartDate.Format("2006-01-02"), s.Frequency)))
	}
}

// CreateReport prints one line per submitted spec and returns the number of failures.
func CreateReport(w io.Writer, outcomes []lifecycle.CreateOutcome) int {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fail(w, "Failed to create %q: %v", o.Spec.Text, o.Err)
			continue
		}
		ok(w, "Created: %s (difficulty %d) starting on %s", o.Spec.Text, o.Spec.Difficulty, o.Spec.StartDate.Format("02/01"))
	}
	summary := fmt.Sprintf("%d of %d dailies created", len(outcomes)-failed, len(outcomes))
	if failed > 0 {
		fmt.Fprintln(w, StyleWarning.Render(summary))
	} else {
		fmt.Fprintln(w, StyleSubtle.Render(summary))
	}
	return failed
}

// DueList prints the presented tasks with the index the user selects by.
// It returns false when there is nothing to complete.
func DueList(w io.Writer, due []model.Task) bool {
	if len(due) == 0 {
		fmt.Fprintln(w, "No due and uncompleted daily tasks found.")
		return false
	}
	fmt.Fprintln(w, StyleHeader.Render("Your due & uncompleted dailies:"))
	for i, t := range due {
		fmt.Fprintf(w, "%d. %s\n", i, t.Text)
	}
	return true
}

// CompleteReport prints the ledger and completion results separately.
func CompleteReport(w io.Writer, res lifecycle.CompleteResult) {
	a := res.Achievement
	switch {
	case a.Goal != nil && a.Goal.Err == nil:
		ok(w, "Updated %q: %s -> %s hours", res.Goal, hours(a.Goal.Before), hours(a.Goal.After))
	case a.Goal != nil:
		fail(w, "Failed to update %q: %v", res.Goal, a.Goal.Err)
	case res.LedgerErr != nil:
		warn(w, "Hours not recorded for %q: %v", res.Goal, res.LedgerErr)
	}
	if a.Stats != nil {
		switch {
		case a.Stats.Err == nil:
			ok(w, "Updated Stats: %s -> %s hours", hours(a.Stats.Before), hours(a.Stats.After))
		default:
			warn(w, "Stats not updated: %v", a.Stats.Err)
		}
	}

	if res.CompleteErr != nil {
		fail(w, "Failed to mark %q complete: %v", res.Task.Text, res.CompleteErr)
		return
	}
	ok(w, "Marked %q as complete!", res.Task.Text)
}

// RolloverReport prints one line per deletion and returns the number of failures.
func RolloverReport(w io.Writer, outcomes []lifecycle.DeleteOutcome) int {
	if len(outcomes) == 0 {
		fmt.Fprintln(w, "No tasks from yesterday to delete.")
		return 0
	}
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fail(w, "Failed to delete %q: %v", o.Task.Text, o.Err)
			continue
		}
		ok(w, "Deleted: %s", o.Task.Text)
	}
	fmt.Fprintf(w, "Done. Deleted %d task(s).\n", len(outcomes)-failed)
	if failed > 0 {
		fmt.Fprintln(w, StyleWarning.Render(fmt.Sprintf("%d task(s) could not be deleted", failed)))
	}
	return failed
}

// Expired lists what a dry-run rollover would delete.
func Expired(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks from yesterday to delete.")
		return
	}
	fmt.Fprintln(w, StyleHeader.Render("Would delete:"))
	for _, t := range tasks {
		fmt.Fprintf(w, "  %s\n", t.Text)
	}
}
