// Package planner expands a create request into the ordered list of dailies
// to submit. It performs no I/O.
package planner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/dailies/pkg/model"
)

var (
	// ErrInvalidDifficulty is returned for a level outside 1..4 or a malformed list.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrInvalidCount is returned for a task count that is not a positive integer.
	ErrInvalidCount = errors.New("invalid task count")
	// ErrEmptyName is returned when the base task name is blank.
	ErrEmptyName = errors.New("task name is empty")
)

const randomKeyword = "random"

// DifficultySpec is either an explicit ordered list of levels or Random.
type DifficultySpec struct {
	Random bool
	Levels []Difficulty
}

// ParseDifficulties reads "random" or a whitespace separated list of levels 1-4.
func ParseDifficulties(input string) (DifficultySpec, error) {
	trimmed := strings.TrimSpace(input)
	if strings.EqualFold(trimmed, randomKeyword) {
		return DifficultySpec{Random: true}, nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return DifficultySpec{}, fmt.Errorf("%w: no levels given", ErrInvalidDifficulty)
	}
	levels := make([]Difficulty, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || !Difficulty(n).Valid() {
			return DifficultySpec{}, fmt.Errorf("%w: %q (use 1, 2, 3, 4 or \"random\")", ErrInvalidDifficulty, f)
		}
		levels = append(levels, Difficulty(n))
	}
	return DifficultySpec{Levels: levels}, nil
}

// ParseCount reads a positive task count.
func ParseCount(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, input)
	}
	return n, nil
}

// Planner builds task specs. Intn draws a value in [0, n); nil uses math/rand/v2.
type Planner struct {
	Intn func(n int) int
}

// New returns a Planner drawing random levels from math/rand/v2.
func New() *Planner {
	return &Planner{Intn: rand.IntN}
}

// Plan returns count specs named "<name> 1".."<name> count". An explicit level
// list shorter than count repeats its last level for the remaining tasks.
func (p *Planner) Plan(name string, spec DifficultySpec, count int, start time.Time) ([]model.TaskSpec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if !spec.Random {
		if len(spec.Levels) == 0 {
			return nil, fmt.Errorf("%w: no levels given", ErrInvalidDifficulty)
		}
		for _, d := range spec.Levels {
			if !d.Valid() {
				return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, d)
			}
		}
	}

	intn := p.Intn
	if intn == nil {
		intn = rand.IntN
	}

	specs := make([]model.TaskSpec, 0, count)
	for i := 0; i < count; i++ {
		var d Difficulty
		if spec.Random {
			d = Difficulty(intn(len(weights)) + 1)
		} else {
			d = spec.Levels[min(i, len(spec.Levels)-1)]
		}
		specs = append(specs, model.TaskSpec{
			Type:       model.TypeDaily,
			Text:       fmt.Sprintf("%s %d", name, i+1),
			Priority:   Weight(d),
			StartDate:  model.ISOTime{Time: start},
			Frequency:  model.FrequencyWeekly,
			Repeat:     model.EveryDay,
			Difficulty: int(d),
		})
	}
	return specs, nil
}
