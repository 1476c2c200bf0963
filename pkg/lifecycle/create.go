package lifecycle

import (
	"context"
	"time"

	"github.com/harrisonrobin/dailies/pkg/model"
	"github.com/harrisonrobin/dailies/pkg/planner"
)

// CreateRequest is a batch of numbered dailies with validated inputs.
type CreateRequest struct {
	Name         string
	Difficulties planner.DifficultySpec
	Count        int
	Start        time.Time
}

// CreateOutcome is the result of submitting one spec. TaskID is empty when Err is set.
type CreateOutcome struct {
	Spec   model.TaskSpec
	TaskID string
	Err    error
}

// Plan validates req and returns the specs Create would submit.
func (s *Service) Plan(req CreateRequest) ([]model.TaskSpec, error) {
	return s.planner.Plan(req.Name, req.Difficulties, req.Count, req.Start)
}

// Create submits every planned spec in order. Validation errors abort before
// any remote call; a failed submission is recorded and the batch continues.
func (s *Service) Create(ctx context.Context, req CreateRequest) ([]CreateOutcome, error) {
	specs, err := s.Plan(req)
	if err != nil {
		return nil, err
	}

	outcomes := make([]CreateOutcome, 0, len(specs))
	for _, spec := range specs {
		id, err := s.tasks.CreateTask(ctx, spec)
		if err != nil {
			s.log.Warn("create failed", "task", spec.Text, "error", err)
		} else {
			s.log.Debug("created", "task", spec.Text, "id", id, "priority", spec.Priority)
		}
		outcomes = append(outcomes, CreateOutcome{Spec: spec, TaskID: id, Err: err})
	}
	return outcomes, nil
}
