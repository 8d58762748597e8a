package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

var ErrSessionNotFound = errors.New("quiz session not found")

type QuestionRepository interface {
	GetAll(ctx context.Context) ([]entities.Question, error)
}

// QuizView is a snapshot of a quiz session for rendering.
type QuizView struct {
	Question     entities.Question
	Index        int
	Total        int
	Selected     string
	HasSelection bool
	Score        int
	Finished     bool
	Progress     float64
}

func viewOf(s *entities.QuizSession) QuizView {
	sel, ok := s.Selected()
	return QuizView{
		Question:     s.Current(),
		Index:        s.Index(),
		Total:        s.Total(),
		Selected:     sel,
		HasSelection: ok,
		Score:        s.Score(),
		Finished:     s.Finished(),
		Progress:     s.ProgressFraction(),
	}
}

// QuizService runs one quiz session per user over the question bank.
type QuizService struct {
	questions QuestionRepository
	sessions  *storage.QuizStorage
	matcher   *AnswerMatcher
}

func NewQuizService(questions QuestionRepository, sessions *storage.QuizStorage) *QuizService {
	return &QuizService{
		questions: questions,
		sessions:  sessions,
		matcher:   NewAnswerMatcher(),
	}
}

// Start replaces any session of the user with a fresh one.
func (s *QuizService) Start(ctx context.Context, userID int64) (QuizView, error) {
	questions, err := s.questions.GetAll(ctx)
	if err != nil {
		return QuizView{}, fmt.Errorf("get questions: %w", err)
	}

	session, err := entities.NewQuizSession(questions)
	if err != nil {
		return QuizView{}, fmt.Errorf("new quiz session: %w", err)
	}

	s.sessions.Store(userID, session)
	return viewOf(session), nil
}

func (s *QuizService) Current(userID int64) (QuizView, error) {
	return s.apply(userID, func(*entities.QuizSession) error { return nil })
}

// Select chooses the option at optionIndex of the current question.
func (s *QuizService) Select(userID int64, optionIndex int) (QuizView, error) {
	return s.apply(userID, func(qs *entities.QuizSession) error {
		opts := qs.Current().Options
		if optionIndex < 0 || optionIndex >= len(opts) {
			return fmt.Errorf("%w: index %d", entities.ErrInvalidOption, optionIndex)
		}
		return qs.SelectOption(opts[optionIndex])
	})
}

// SelectTyped chooses the option closest to a typed answer.
func (s *QuizService) SelectTyped(userID int64, answer string) (QuizView, error) {
	return s.apply(userID, func(qs *entities.QuizSession) error {
		if qs.Finished() {
			return entities.ErrSessionFinished
		}
		opt, ok := s.matcher.Match(answer, qs.Current().Options)
		if !ok {
			return fmt.Errorf("%w: %q", entities.ErrInvalidOption, answer)
		}
		return qs.SelectOption(opt)
	})
}

func (s *QuizService) Advance(userID int64) (QuizView, error) {
	return s.apply(userID, func(qs *entities.QuizSession) error {
		return qs.Advance()
	})
}

func (s *QuizService) Restart(userID int64) (QuizView, error) {
	return s.apply(userID, func(qs *entities.QuizSession) error {
		qs.Restart()
		return nil
	})
}

// End discards the user's session.
func (s *QuizService) End(userID int64) {
	s.sessions.Delete(userID)
}

// apply runs fn under the storage lock and returns the resulting view,
// also when fn reports a usage error.
func (s *QuizService) apply(userID int64, fn func(*entities.QuizSession) error) (QuizView, error) {
	var view QuizView
	found, err := s.sessions.With(userID, func(qs *entities.QuizSession) error {
		err := fn(qs)
		view = viewOf(qs)
		return err
	})
	if !found {
		return QuizView{}, ErrSessionNotFound
	}
	return view, err
}
