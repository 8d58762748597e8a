package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

func (h *Handler) quizStartHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		view, err := h.svc.Quiz.Start(ctx, userID)
		if err != nil {
			if errors.Is(err, entities.ErrNoQuestions) {
				h.send(newHTMLMessage(chatID, msgNoQuestions))
				return nil
			}
			return fmt.Errorf("start quiz: %w", err)
		}

		h.modes.Set(userID, storage.ModeQuiz)

		msg := newHTMLMessage(chatID, formatQuiz(view))
		msg.ReplyMarkup = buildQuizKeyboard(view)
		h.send(msg)

		return nil
	}
}

// quizTypedAnswerHandler selects the option closest to a typed answer.
func (h *Handler) quizTypedAnswerHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		view, err := h.svc.Quiz.SelectTyped(userID, text)
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			h.modes.Set(userID, storage.ModeChat)
			msg := newHTMLMessage(chatID, msgQuizExpired)
			msg.ReplyMarkup = buildQuizStartKeyboard()
			h.send(msg)
			return nil
		case errors.Is(err, entities.ErrSessionFinished):
			h.send(newHTMLMessage(chatID, msgQuizAlreadyDone))
			return nil
		case errors.Is(err, entities.ErrInvalidOption):
			h.send(newHTMLMessage(chatID, msgNoMatchingOption))
			return nil
		case err != nil:
			return fmt.Errorf("select typed answer: %w", err)
		}

		msg := newHTMLMessage(chatID, formatQuiz(view))
		msg.ReplyMarkup = buildQuizKeyboard(view)
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleQuizCallback(ctx context.Context, userID int64, data callbackData) (callbackResult, error) {
	var (
		view service.QuizView
		err  error
	)

	switch data.param(0) {
	case quizStart:
		view, err = h.svc.Quiz.Start(ctx, userID)
		if errors.Is(err, entities.ErrNoQuestions) {
			return callbackResult{notice: msgNoQuestions}, nil
		}
		if err == nil {
			h.modes.Set(userID, storage.ModeQuiz)
		}

	case quizSelect:
		i, ok := data.intParam(1)
		if !ok {
			h.logger.Warn("invalid quiz option in callback", zap.String("data", data.Raw))
			return callbackResult{notice: msgInvalidOption}, nil
		}
		view, err = h.svc.Quiz.Select(userID, i)

	case quizNext:
		view, err = h.svc.Quiz.Advance(userID)
		if err == nil && view.Finished {
			h.finishQuiz(ctx, userID, view)
		}

	case quizRestart:
		view, err = h.svc.Quiz.Restart(userID)
		if err == nil {
			h.modes.Set(userID, storage.ModeQuiz)
		}

	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", data.Raw))
		return callbackResult{}, nil
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		kb := buildQuizStartKeyboard()
		return callbackResult{text: msgQuizExpired, kb: &kb}, nil
	case errors.Is(err, entities.ErrNoSelection):
		return callbackResult{notice: msgSelectFirst}, nil
	case errors.Is(err, entities.ErrInvalidOption):
		return callbackResult{notice: msgInvalidOption}, nil
	case errors.Is(err, entities.ErrSessionFinished):
		return callbackResult{notice: msgQuizAlreadyDone}, nil
	case err != nil:
		return callbackResult{}, err
	}

	kb := buildQuizKeyboard(view)
	return callbackResult{text: formatQuiz(view), kb: &kb}, nil
}

// finishQuiz records a finished run and returns plain text to the chatbot.
func (h *Handler) finishQuiz(ctx context.Context, userID int64, view service.QuizView) {
	h.modes.Set(userID, storage.ModeChat)

	if err := h.svc.Progress.RecordQuiz(ctx, userID, view.Score, view.Total); err != nil {
		h.logger.Error("failed to record quiz result",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
