package telegram

import (
	"context"
	"fmt"
)

func (h *Handler) profileHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		progress, err := h.svc.Progress.GetProgress(ctx, userID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}

		lessons, err := h.svc.Lessons.List(ctx)
		if err != nil {
			return fmt.Errorf("list lessons: %w", err)
		}

		favorites := len(h.svc.Favorites.List(ctx, userID))

		h.send(newHTMLMessage(chatID, formatProfile(progress, len(lessons), favorites)))
		return nil
	}
}
