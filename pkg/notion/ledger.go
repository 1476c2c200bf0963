package notion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Update is the outcome of one read-add-write against a ledger page.
type Update struct {
	PageID string
	Before float64
	After  float64
	Err    error
}

// Achievement reports both writes of RecordAchievement. Goal is nil when the
// goal lookup itself did not succeed.
type Achievement struct {
	GoalName string
	Delta    float64
	Goal     *Update
	Stats    *Update
}

// Ledger credits hours to a goal and to the stats aggregate page.
type Ledger struct {
	client      *Client
	statsPageID string
	log         *slog.Logger
}

// NewLedger returns a Ledger. An empty statsPageID disables the stats update.
func NewLedger(client *Client, statsPageID string, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{client: client, statsPageID: statsPageID, log: log}
}

// RecordAchievement adds delta hours to the goal titled goalName and then to
// the stats page. The two writes are independent: a failed goal write does not
// stop the stats write and nothing is rolled back. An unknown goal writes
// nothing and returns ErrGoalNotFound.
func (l *Ledger) RecordAchievement(ctx context.Context, goalName string, delta float64) (Achievement, error) {
	res := Achievement{GoalName: goalName, Delta: delta}

	page, err := l.client.QueryGoal(ctx, goalName)
	if err != nil {
		return res, fmt.Errorf("looking up goal %q: %w", goalName, err)
	}
	if page == nil {
		l.log.Warn("no ledger row for goal", "goal", goalName)
		return res, fmt.Errorf("%w: %q", ErrGoalNotFound, goalName)
	}

	res.Goal = l.add(ctx, page, delta)
	if res.Goal.Err == nil {
		l.log.Info("goal updated", "goal", goalName, "before", res.Goal.Before, "after", res.Goal.After)
	}

	if l.statsPageID == "" {
		res.Stats = &Update{Err: ErrStatsNotConfigured}
	} else {
		stats, err := l.client.GetPage(ctx, l.statsPageID)
		if err != nil {
			res.Stats = &Update{PageID: l.statsPageID, Err: err}
		} else {
			res.Stats = l.add(ctx, stats, delta)
			if res.Stats.Err == nil {
				l.log.Info("stats updated", "before", res.Stats.Before, "after", res.Stats.After)
			}
		}
	}

	var errs []error
	if res.Goal.Err != nil {
		errs = append(errs, fmt.Errorf("goal %q: %w", goalName, res.Goal.Err))
	}
	if res.Stats.Err != nil && !errors.Is(res.Stats.Err, ErrStatsNotConfigured) {
		errs = append(errs, fmt.Errorf("stats: %w", res.Stats.Err))
	}
	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}

func (l *Ledger) add(ctx context.Context, page *Page, delta float64) *Update {
	u := &Update{PageID: page.ID, Before: page.Hours()}
	u.After = u.Before + delta
	if err := l.client.SetHours(ctx, page.ID, u.After); err != nil {
		l.log.Warn("ledger write failed", "page", page.ID, "error", err)
		u.Err = err
	}
	return u
}
