package entities

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single multiple-choice quiz item.
type Question struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"answer"`
}

// Validate checks that the question has a prompt, at least two distinct
// options and a correct option that is one of them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}

	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %q has %d options, need at least 2", ErrInvalidQuestion, q.Prompt, len(q.Options))
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, ok := seen[opt]; ok {
			return fmt.Errorf("%w: %q has duplicate option %q", ErrInvalidQuestion, q.Prompt, opt)
		}
		seen[opt] = struct{}{}
	}

	if _, ok := seen[q.CorrectOption]; !ok {
		return fmt.Errorf("%w: %q answer %q is not among options", ErrInvalidQuestion, q.Prompt, q.CorrectOption)
	}

	return nil
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}
