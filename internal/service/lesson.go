package service

import (
	"context"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

type LessonRepository interface {
	GetAll(ctx context.Context) ([]entities.Lesson, error)
	GetByID(ctx context.Context, id int) (*entities.Lesson, error)
}

type LessonService struct {
	repository LessonRepository
}

func NewLessonService(repository LessonRepository) *LessonService {
	return &LessonService{repository: repository}
}

func (s *LessonService) List(ctx context.Context) ([]entities.Lesson, error) {
	return s.repository.GetAll(ctx)
}

func (s *LessonService) Get(ctx context.Context, id int) (*entities.Lesson, error) {
	return s.repository.GetByID(ctx, id)
}
