package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

type routeKey struct{}

// route identifies the update being handled in logs.
type route struct {
	userID int64
	name   string
}

func withRoute(ctx context.Context, userID int64, name string) context.Context {
	return context.WithValue(ctx, routeKey{}, route{userID: userID, name: name})
}

func routeFrom(ctx context.Context) route {
	r, _ := ctx.Value(routeKey{}).(route)
	return r
}

// withErrorHandling logs a failed or panicking handler with its route and
// answers the chat with a generic error.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v", p)
			}
			if err == nil {
				return
			}

			r := routeFrom(ctx)
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", r.userID),
				zap.String("route", r.name),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			err = nil
		}()

		return fn(ctx, chatID)
	}
}
