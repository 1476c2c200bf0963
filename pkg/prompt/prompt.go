// Package prompt collects interactive answers. Flows never read input
// themselves; the command layer asks here and passes typed values on.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for values.
type Prompter interface {
	Ask(label string, validate func(string) error) (string, error)
	Choose(label string, items []string) (string, error)
}

// Terminal prompts on a terminal. Zero-value streams use the process stdio.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Ask reads one line. A validate failure is returned, not re-prompted, so
// a bad answer ends the flow the same way a bad flag value does.
func (t Terminal) Ask(label string, validate func(string) error) (string, error) {
	p := t.linePrompt(label)
	answer, err := p.Run()
	if err != nil {
		return "", translate(err)
	}
	return accept(answer, validate)
}

func (t Terminal) linePrompt(label string) promptui.Prompt {
	return promptui.Prompt{
		Label:  label,
		Stdin:  t.In,
		Stdout: t.Out,
	}
}

// accept trims answer and runs validate on it.
func accept(answer string, validate func(string) error) (string, error) {
	answer = strings.TrimSpace(answer)
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

// Choose shows items as a selectable list.
func (t Terminal) Choose(label string, items []string) (string, error) {
	s := promptui.Select{
		Label:  label,
		Items:  items,
		Stdin:  t.In,
		Stdout: t.Out,
	}
	_, choice, err := s.Run()
	if err != nil {
		return "", translate(err)
	}
	return choice, nil
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}

// Scripted answers prompts from a fixed list, in order. Choose accepts an
// answer only if it names one of the items.
type Scripted struct {
	Answers []string
	Asked   []string
}

func (s *Scripted) next(label string) (string, error) {
	s.Asked = append(s.Asked, label)
	if len(s.Answers) == 0 {
		return "", ErrAborted
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Scripted) Ask(label string, validate func(string) error) (string, error) {
	a, err := s.next(label)
	if err != nil {
		return "", err
	}
	return accept(a, validate)
}

func (s *Scripted) Choose(label string, items []string) (string, error) {
	a, err := s.next(label)
	if err != nil {
		return "", err
	}
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(a), it) {
			return it, nil
		}
	}
	return "", errors.New("invalid choice: " + a)
}
