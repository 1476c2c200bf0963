// Package lifecycle sequences the create, complete and rollover flows over the
// task service and the hours ledger. Flows take already-resolved inputs and
// return per-item outcomes; nothing here reads from a terminal.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harrisonrobin/dailies/pkg/model"
	"github.com/harrisonrobin/dailies/pkg/notion"
	"github.com/harrisonrobin/dailies/pkg/planner"
)

// ErrTaskNotFound is returned when a selection matches no task.
var ErrTaskNotFound = errors.New("task not found")

// TaskGateway is the recurring-task service.
type TaskGateway interface {
	CreateTask(ctx context.Context, spec model.TaskSpec) (string, error)
	ListDailies(ctx context.Context) ([]model.Task, error)
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// AchievementLedger credits hours to a named goal.
type AchievementLedger interface {
	RecordAchievement(ctx context.Context, goalName string, delta float64) (notion.Achievement, error)
}

// Clock supplies the day rollover targets.
type Clock interface {
	YesterdayStart() time.Time
}

// Service runs the flows. It keeps no state between calls.
type Service struct {
	tasks   TaskGateway
	ledger  AchievementLedger
	clock   Clock
	planner *planner.Planner
	log     *slog.Logger
}

// NewService returns a Service. A nil planner or logger gets the default.
func NewService(tasks TaskGateway, ledger AchievementLedger, clock Clock, p *planner.Planner, log *slog.Logger) *Service {
	if p == nil {
		p = planner.New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{tasks: tasks, ledger: ledger, clock: clock, planner: p, log: log}
}
