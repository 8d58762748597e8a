package telegram

import (
	"context"
	"fmt"
	"strings"
)

func (h *Handler) tipHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		tip, err := h.svc.Tips.Random(ctx)
		if err != nil {
			return fmt.Errorf("random tip: %w", err)
		}

		h.send(newHTMLMessage(chatID, formatTip(tip)))
		return nil
	}
}

// tipsSubscriptionHandler handles "/tips on" and "/tips off".
func (h *Handler) tipsSubscriptionHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch strings.ToLower(args) {
		case "on":
			if err := h.svc.Tips.Subscribe(ctx, chatID); err != nil {
				return fmt.Errorf("subscribe to tips: %w", err)
			}
			h.send(newHTMLMessage(chatID, msgTipsSubscribed))

		case "off":
			if err := h.svc.Tips.Unsubscribe(ctx, chatID); err != nil {
				return fmt.Errorf("unsubscribe from tips: %w", err)
			}
			h.send(newHTMLMessage(chatID, msgTipsUnsubscribed))

		default:
			h.send(newHTMLMessage(chatID, msgTipsUsage))
		}

		return nil
	}
}
