package service

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

type ProgressRepository interface {
	Get(ctx context.Context, userID int64) (*entities.UserProgress, error)
	Save(ctx context.Context, userID int64, p *entities.UserProgress) error
}

// ProgressService records lesson views and finished quizzes for the profile.
type ProgressService struct {
	repository ProgressRepository
	now        func() time.Time

	mu sync.Mutex
}

func NewProgressService(repository ProgressRepository) *ProgressService {
	return &ProgressService{
		repository: repository,
		now:        time.Now,
	}
}

func (s *ProgressService) GetProgress(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	return s.repository.Get(ctx, userID)
}

// MarkLessonViewed stores the view only the first time a lesson is opened.
func (s *ProgressService) MarkLessonViewed(ctx context.Context, userID int64, lessonID int) error {
	return s.update(ctx, userID, func(p *entities.UserProgress) bool {
		return p.MarkLessonViewed(lessonID, s.now())
	})
}

func (s *ProgressService) RecordQuiz(ctx context.Context, userID int64, score, total int) error {
	return s.update(ctx, userID, func(p *entities.UserProgress) bool {
		p.RecordQuiz(score, total, s.now())
		return true
	})
}

func (s *ProgressService) update(ctx context.Context, userID int64, fn func(*entities.UserProgress) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repository.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !fn(p) {
		return nil
	}
	return s.repository.Save(ctx, userID, p)
}
