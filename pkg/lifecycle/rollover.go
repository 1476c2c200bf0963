package lifecycle

import (
	"context"

	"github.com/harrisonrobin/dailies/pkg/model"
	"github.com/harrisonrobin/dailies/pkg/schedule"
)

// DeleteOutcome is the result of deleting one expired daily.
type DeleteOutcome struct {
	Task model.Task
	Err  error
}

// Expired lists the dailies that started exactly yesterday. Older and newer
// tasks are never returned.
func (s *Service) Expired(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.tasks.ListDailies(ctx)
	if err != nil {
		return nil, err
	}
	yesterday := s.clock.YesterdayStart()

	var expired []model.Task
	for _, t := range tasks {
		if t.StartDate == nil || t.StartDate.IsZero() {
			continue
		}
		if schedule.DayStart(t.StartDate.Time).Equal(yesterday) {
			expired = append(expired, t)
		}
	}
	return expired, nil
}

// Rollover deletes yesterday's dailies one at a time. A failed delete is
// recorded and the remaining tasks are still attempted.
func (s *Service) Rollover(ctx context.Context) ([]DeleteOutcome, error) {
	expired, err := s.Expired(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]DeleteOutcome, 0, len(expired))
	for _, t := range expired {
		err := s.tasks.DeleteTask(ctx, t.ID)
		if err != nil {
			s.log.Warn("delete failed", "task", t.Text, "id", t.ID, "error", err)
		} else {
			s.log.Debug("deleted", "task", t.Text, "id", t.ID)
		}
		outcomes = append(outcomes, DeleteOutcome{Task: t, Err: err})
	}
	return outcomes, nil
}
