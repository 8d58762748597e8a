package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrInvalidOption   = errors.New("option is not among the current question's options")
	ErrNoSelection     = errors.New("no option selected for the current question")
	ErrSessionFinished = errors.New("quiz session is finished")
)

// QuizSession is a linear walk through a fixed question list.
// An option is selected for the current question and scored on Advance.
// A session has a single owner and is not safe for concurrent use.
type QuizSession struct {
	questions    []Question
	currentIndex int
	selected     string
	hasSelection bool
	score        int
	finished     bool
}

// NewQuizSession creates a session positioned at the first question.
// The question slice is copied; every question must be valid.
func NewQuizSession(questions []Question) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	qs := make([]Question, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		q.Options = append([]string(nil), q.Options...)
		qs[i] = q
	}

	return &QuizSession{questions: qs}, nil
}

// SelectOption records option as the answer to the current question,
// replacing any earlier selection. Scoring happens on Advance.
func (s *QuizSession) SelectOption(option string) error {
	if s.finished {
		return ErrSessionFinished
	}

	if !s.questions[s.currentIndex].HasOption(option) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}

	s.selected = option
	s.hasSelection = true
	return nil
}

// Advance scores the current selection and moves to the next question.
// On the last question it finishes the session and keeps the index.
func (s *QuizSession) Advance() error {
	if s.finished {
		return ErrSessionFinished
	}
	if !s.hasSelection {
		return ErrNoSelection
	}

	if s.selected == s.questions[s.currentIndex].CorrectOption {
		s.score++
	}

	if s.currentIndex == len(s.questions)-1 {
		s.finished = true
		return nil
	}

	s.currentIndex++
	s.selected = ""
	s.hasSelection = false
	return nil
}

// Restart returns the session to its creation-time state.
func (s *QuizSession) Restart() {
	s.currentIndex = 0
	s.selected = ""
	s.hasSelection = false
	s.score = 0
	s.finished = false
}

// ProgressFraction returns (index+1)/total, a value in (0, 1].
func (s *QuizSession) ProgressFraction() float64 {
	return float64(s.currentIndex+1) / float64(len(s.questions))
}

func (s *QuizSession) Current() Question { return s.questions[s.currentIndex] }
func (s *QuizSession) Index() int        { return s.currentIndex }
func (s *QuizSession) Total() int        { return len(s.questions) }
func (s *QuizSession) Score() int        { return s.score }
func (s *QuizSession) Finished() bool    { return s.finished }

// Selected returns the current selection and whether one is present.
func (s *QuizSession) Selected() (string, bool) {
	return s.selected, s.hasSelection
}
