package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonRepository provides the course lessons loaded from JSON.
type LessonRepository struct {
	lessons []entities.Lesson
}

func NewLessonRepository(path string) (*LessonRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Lessons []entities.Lesson `json:"lessons"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons JSON: %w", err)
	}

	seen := make(map[int]struct{}, len(wrapper.Lessons))
	for _, l := range wrapper.Lessons {
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %d", l.ID)
		}
		seen[l.ID] = struct{}{}
	}

	return &LessonRepository{lessons: wrapper.Lessons}, nil
}

// GetAll returns all lessons in course order.
func (r *LessonRepository) GetAll(_ context.Context) ([]entities.Lesson, error) {
	return r.lessons, nil
}

// GetByID retrieves a lesson by its ID.
func (r *LessonRepository) GetByID(_ context.Context, id int) (*entities.Lesson, error) {
	for i := range r.lessons {
		if r.lessons[i].ID == id {
			return &r.lessons[i], nil
		}
	}
	return nil, ErrLessonNotFound
}
