package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harrisonrobin/dailies/pkg/model"
	"github.com/harrisonrobin/dailies/pkg/notion"
)

var errBoom = errors.New("boom")

// fakeGateway records every mutating call.
type fakeGateway struct {
	tasks     []model.Task
	listErr   error
	failText  map[string]bool // CreateTask fails for these texts
	failID    map[string]bool // CompleteTask/DeleteTask fail for these ids
	created   []model.TaskSpec
	completed []string
	deleted   []string
}

func (g *fakeGateway) CreateTask(_ context.Context, spec model.TaskSpec) (string, error) {
	if g.failText[spec.Text] {
		return "", fmt.Errorf("create %q: %w", spec.Text, errBoom)
	}
	g.created = append(g.created, spec)
	return fmt.Sprintf("id-%d", len(g.created)), nil
}

func (g *fakeGateway) ListDailies(context.Context) ([]model.Task, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.tasks, nil
}

func (g *fakeGateway) CompleteTask(_ context.Context, id string) error {
	if g.failID[id] {
		return errBoom
	}
	g.completed = append(g.completed, id)
	return nil
}

func (g *fakeGateway) DeleteTask(_ context.Context, id string) error {
	if g.failID[id] {
		return errBoom
	}
	g.deleted = append(g.deleted, id)
	return nil
}

type ledgerCall struct {
	goal  string
	delta float64
}

type fakeLedger struct {
	calls []ledgerCall
	err   error
}

func (l *fakeLedger) RecordAchievement(_ context.Context, goal string, delta float64) (notion.Achievement, error) {
	l.calls = append(l.calls, ledgerCall{goal, delta})
	return notion.Achievement{GoalName: goal, Delta: delta}, l.err
}

type fixedClock time.Time

func (c fixedClock) YesterdayStart() time.Time { return time.Time(c) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func startingAt(t time.Time) *model.ISOTime {
	return &model.ISOTime{Time: t}
}
