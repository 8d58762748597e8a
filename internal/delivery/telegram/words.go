package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
)

func (h *Handler) wordHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entry, err := h.svc.Lookup.RandomWord(ctx)
		if err != nil {
			h.logger.Warn("random word lookup failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.send(newHTMLMessage(chatID, msgWordUnavailable))
			return nil
		}

		res := h.wordResult(ctx, userID, *entry, "")
		msg := newHTMLMessage(chatID, res.text)
		msg.ReplyMarkup = *res.kb
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleWordCallback(ctx context.Context, userID int64, data callbackData) (callbackResult, error) {
	if data.param(0) != wordNext {
		h.logger.Warn("unknown word callback", zap.String("data", data.Raw))
		return callbackResult{}, nil
	}

	entry, err := h.svc.Lookup.RandomWord(ctx)
	if err != nil {
		h.logger.Warn("random word lookup failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return callbackResult{notice: msgWordUnavailable}, nil
	}

	return h.wordResult(ctx, userID, *entry, ""), nil
}

func (h *Handler) wordResult(ctx context.Context, userID int64, entry entities.WordEntry, notice string) callbackResult {
	h.lookups.Store(userID, entry)

	source, target := h.svc.Translator.Languages()
	kb := buildWordKeyboard(h.svc.Favorites.Contains(ctx, userID, entry.Word))

	return callbackResult{
		text:   formatWord(entry, source, target),
		kb:     &kb,
		notice: notice,
	}
}

func (h *Handler) favoritesHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries := h.svc.Favorites.List(ctx, userID)

		msg := newHTMLMessage(chatID, formatFavorites(entries))
		if kb := buildFavoritesKeyboard(entries); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleFavoritesCallback(ctx context.Context, userID int64, data callbackData) (callbackResult, error) {
	switch data.param(0) {
	case favAdd, favRemove:
		rec, ok := h.lookups.Get(userID)
		if !ok {
			return callbackResult{notice: msgNoCurrentWord}, nil
		}

		var (
			notice string
			err    error
		)
		switch {
		case data.param(0) == favRemove:
			notice, err = favoritesNotice(h.svc.Favorites.Remove(ctx, userID, rec.Entry.Word), msgFavoriteRemoved)
		case h.svc.Favorites.Contains(ctx, userID, rec.Entry.Word):
			notice = msgFavoriteExists
		default:
			notice, err = favoritesNotice(h.svc.Favorites.Add(ctx, userID, rec.Entry.ToFavorite()), msgFavoriteAdded)
		}
		if err != nil {
			return callbackResult{}, err
		}

		return h.wordResult(ctx, userID, rec.Entry, notice), nil

	case favDelete:
		i, ok := data.intParam(1)
		entries := h.svc.Favorites.List(ctx, userID)
		if !ok || i >= len(entries) {
			return h.favoritesResult(entries, ""), nil
		}

		notice, err := favoritesNotice(h.svc.Favorites.Remove(ctx, userID, entries[i].Word), msgFavoriteRemoved)
		if err != nil {
			return callbackResult{}, err
		}
		return h.favoritesResult(h.svc.Favorites.List(ctx, userID), notice), nil

	case favClear:
		notice, err := favoritesNotice(h.svc.Favorites.Clear(ctx, userID), msgFavoritesCleared)
		if err != nil {
			return callbackResult{}, err
		}
		return h.favoritesResult(h.svc.Favorites.List(ctx, userID), notice), nil

	case favList:
		return h.favoritesResult(h.svc.Favorites.List(ctx, userID), ""), nil

	default:
		h.logger.Warn("unknown favorites callback", zap.String("data", data.Raw))
		return callbackResult{}, nil
	}
}

func (h *Handler) favoritesResult(entries []entities.FavoriteEntry, notice string) callbackResult {
	return callbackResult{
		text:   formatFavorites(entries),
		kb:     buildFavoritesKeyboard(entries),
		notice: notice,
	}
}

// favoritesNotice maps the result of a favorites mutation to the notice shown
// to the user. Errors other than storage failures are returned.
func favoritesNotice(err error, ok string) (string, error) {
	switch {
	case err == nil:
		return ok, nil
	case errors.Is(err, service.ErrPersistence):
		return msgFavoriteNotStored, nil
	case errors.Is(err, service.ErrNotLoaded):
		return msgFavoritesUnavailable, nil
	default:
		return "", err
	}
}
