package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// translateHandler translates text, or switches to translator mode when text is empty.
func (h *Handler) translateHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if text == "" {
			source, target := h.svc.Translator.Languages()
			h.modes.Set(userID, storage.ModeTranslate)
			h.send(newHTMLMessage(chatID, fmt.Sprintf(msgTranslateMode, esc(source), esc(target))))
			return nil
		}

		translated, err := h.svc.Translator.Translate(ctx, text)
		if err != nil {
			h.logger.Warn("translation failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.send(newHTMLMessage(chatID, msgTranslateUnavailable))
			return nil
		}

		h.send(newHTMLMessage(chatID, "🌐 "+esc(translated)))
		return nil
	}
}

// askHandler sends text to the chatbot, or switches to chat mode when text is empty.
func (h *Handler) askHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.modes.Set(userID, storage.ModeChat)

		if text == "" {
			h.send(newHTMLMessage(chatID, msgChatMode))
			return nil
		}

		reply, err := h.svc.Chat.Ask(ctx, userID, text)
		if err != nil {
			if errors.Is(err, service.ErrEmptyText) {
				h.send(newHTMLMessage(chatID, msgChatMode))
				return nil
			}
			h.logger.Warn("chatbot request failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.send(newHTMLMessage(chatID, msgChatUnavailable))
			return nil
		}

		h.send(newHTMLMessage(chatID, esc(reply)))
		return nil
	}
}
