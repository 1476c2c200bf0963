package lifecycle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/harrisonrobin/dailies/pkg/model"
	"github.com/harrisonrobin/dailies/pkg/notion"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultHours is the credit for one completed daily.
const DefaultHours = 1.0

// Candidates is a snapshot of the user's dailies. Due holds the tasks that are
// due and not completed, in fetch order; it is what gets presented.
type Candidates struct {
	All []model.Task
	Due []model.Task
}

// CompleteRequest selects a task by due-list index or name. Hours <= 0 means DefaultHours.
type CompleteRequest struct {
	Selection string
	Hours     float64
}

// CompleteResult reports the ledger update and the completion call separately;
// either may fail without the other.
type CompleteResult struct {
	Task        model.Task
	Goal        string
	Achievement notion.Achievement
	LedgerErr   error
	CompleteErr error
}

// Candidates fetches the dailies and filters the due, uncompleted ones.
func (s *Service) Candidates(ctx context.Context) (Candidates, error) {
	tasks, err := s.tasks.ListDailies(ctx)
	if err != nil {
		return Candidates{}, err
	}
	c := Candidates{All: tasks}
	for _, t := range tasks {
		if !t.Completed && t.IsDue {
			c.Due = append(c.Due, t)
		}
	}
	return c, nil
}

// Resolve maps user input to a task. An in-range integer indexes c.Due;
// anything else is matched case-insensitively against the text of c.All.
func Resolve(c Candidates, input string) (model.Task, error) {
	input = strings.TrimSpace(input)
	if idx, err := strconv.Atoi(input); err == nil && idx >= 0 && idx < len(c.Due) {
		return c.Due[idx], nil
	}
	if input != "" {
		for _, t := range c.All {
			if strings.EqualFold(strings.TrimSpace(t.Text), input) {
				return t, nil
			}
		}
	}
	return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, input)
}

// GoalName derives the ledger goal from a task text: its first word with the
// first letter upper-cased, e.g. "meditate 3" -> "Meditate".
func GoalName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	word := fields[0]
	_, size := utf8.DecodeRuneInString(word)
	return cases.Upper(language.Und).String(word[:size]) + word[size:]
}

// Complete resolves req.Selection against c, credits the derived goal and
// marks the task completed. Only a selection miss stops the flow.
func (s *Service) Complete(ctx context.Context, c Candidates, req CompleteRequest) (CompleteResult, error) {
	task, err := Resolve(c, req.Selection)
	if err != nil {
		return CompleteResult{}, err
	}

	hours := req.Hours
	if hours <= 0 {
		hours = DefaultHours
	}

	res := CompleteResult{Task: task, Goal: GoalName(task.Text)}
	if res.Goal == "" {
		res.LedgerErr = fmt.Errorf("%w: task %q has no text", notion.ErrGoalNotFound, task.ID)
	} else {
		res.Achievement, res.LedgerErr = s.ledger.RecordAchievement(ctx, res.Goal, hours)
	}
	if res.LedgerErr != nil {
		s.log.Warn("ledger update failed", "goal", res.Goal, "error", res.LedgerErr)
	}

	if err := s.tasks.CompleteTask(ctx, task.ID); err != nil {
		s.log.Warn("complete failed", "task", task.Text, "id", task.ID, "error", err)
		res.CompleteErr = err
	}
	return res, nil
}
