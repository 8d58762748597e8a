package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// callbackResult describes how to update the message a callback came from.
// An empty text leaves the message untouched; notice is shown as a toast.
type callbackResult struct {
	text   string
	kb     *tgbotapi.InlineKeyboardMarkup
	notice string
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)
	userID := cb.From.ID

	var chatID int64
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}

	var (
		res callbackResult
		err error
	)

	switch data.Action {
	case actionQuiz:
		res, err = h.handleQuizCallback(ctx, userID, data)
	case actionWord:
		res, err = h.handleWordCallback(ctx, userID, data)
	case actionFav:
		res, err = h.handleFavoritesCallback(ctx, userID, data)
	case actionLesson:
		res, err = h.handleLessonCallback(ctx, userID, data)
	case actionMenu:
		if chatID != 0 {
			h.handleMenuCallback(ctx, userID, chatID, data)
		}
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("user_id", userID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		res = callbackResult{notice: msgInternalError}
	}

	if res.text != "" && cb.Message != nil {
		edit := newHTMLEdit(chatID, cb.Message.MessageID, res.text)
		if res.kb != nil {
			edit.ReplyMarkup = res.kb
		}
		h.send(edit)
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, res.notice)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// handleMenuCallback opens a main menu entry as a new message.
func (h *Handler) handleMenuCallback(ctx context.Context, userID, chatID int64, data callbackData) {
	switch entry := data.param(0); entry {
	case menuLessons, menuQuiz, menuWord, menuFavorites, menuTranslate, menuProfile:
		h.handleCommand(ctx, entry, "", userID, chatID)
	case menuChat:
		h.handleCommand(ctx, "ask", "", userID, chatID)
	default:
		h.logger.Warn("unknown menu entry", zap.String("data", data.Raw))
	}
}
