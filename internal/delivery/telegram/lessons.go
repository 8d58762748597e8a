package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/repository"
)

func (h *Handler) lessonsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lessons, err := h.svc.Lessons.List(ctx)
		if err != nil {
			return fmt.Errorf("list lessons: %w", err)
		}

		msg := newHTMLMessage(chatID, formatLessonList(lessons))
		if kb := buildLessonListKeyboard(lessons); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleLessonCallback(ctx context.Context, userID int64, data callbackData) (callbackResult, error) {
	lessons, err := h.svc.Lessons.List(ctx)
	if err != nil {
		return callbackResult{}, fmt.Errorf("list lessons: %w", err)
	}

	if data.param(0) == lessonList {
		return callbackResult{
			text: formatLessonList(lessons),
			kb:   buildLessonListKeyboard(lessons),
		}, nil
	}

	id, ok := data.intParam(0)
	if !ok {
		h.logger.Warn("invalid lesson id in callback", zap.String("data", data.Raw))
		return callbackResult{notice: msgLessonNotFound}, nil
	}

	lesson, err := h.svc.Lessons.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return callbackResult{notice: msgLessonNotFound}, nil
		}
		return callbackResult{}, fmt.Errorf("get lesson %d: %w", id, err)
	}

	if err := h.svc.Progress.MarkLessonViewed(ctx, userID, lesson.ID); err != nil {
		h.logger.Error("failed to mark lesson viewed",
			zap.Int64("user_id", userID),
			zap.Int("lesson_id", lesson.ID),
			zap.Error(err),
		)
	}

	kb := buildLessonKeyboard(lessons, lesson.ID)
	return callbackResult{text: formatLesson(*lesson), kb: &kb}, nil
}
