package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// Services groups the collaborators of the handler.
type Services struct {
	Quiz       QuizService
	Favorites  FavoritesService
	Lookup     LookupService
	Translator TranslatorService
	Chat       ChatService
	Lessons    LessonService
	Progress   ProgressService
	Tips       TipService
}

type Handler struct {
	bot     BotAPI
	logger  *zap.Logger
	svc     Services
	lookups *storage.LookupStorage
	modes   *storage.ModeStorage
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	svc Services,
	lookups *storage.LookupStorage,
	modes *storage.ModeStorage,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:     bot,
		logger:  logger,
		svc:     svc,
		lookups: lookups,
		modes:   modes,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.Int64("user_id", update.Message.From.ID),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message.Command(), update.Message.CommandArguments(), userID, chatID)
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}

	ctx = withRoute(ctx, userID, "text:"+string(h.modes.Get(userID)))
	_ = h.withErrorHandling(h.handleText(userID, text))(ctx, chatID)
}

func (h *Handler) handleCommand(ctx context.Context, command, args string, userID, chatID int64) {
	args = strings.TrimSpace(args)
	ctx = withRoute(ctx, userID, "/"+command)

	switch command {
	case "start":
		h.modes.Set(userID, storage.ModeChat)
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildMainMenuKeyboard()
		h.send(msg)

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	case "lessons":
		_ = h.withErrorHandling(h.lessonsHandler())(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.quizStartHandler(userID))(ctx, chatID)

	case "word":
		_ = h.withErrorHandling(h.wordHandler(userID))(ctx, chatID)

	case "favorites":
		_ = h.withErrorHandling(h.favoritesHandler(userID))(ctx, chatID)

	case "translate":
		_ = h.withErrorHandling(h.translateHandler(userID, args))(ctx, chatID)

	case "ask":
		_ = h.withErrorHandling(h.askHandler(userID, args))(ctx, chatID)

	case "reset_chat":
		h.svc.Chat.Reset(userID)
		h.modes.Set(userID, storage.ModeChat)
		h.send(newHTMLMessage(chatID, msgChatReset))

	case "profile":
		_ = h.withErrorHandling(h.profileHandler(userID))(ctx, chatID)

	case "tip":
		_ = h.withErrorHandling(h.tipHandler())(ctx, chatID)

	case "tips":
		_ = h.withErrorHandling(h.tipsSubscriptionHandler(args))(ctx, chatID)

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// handleText routes plain text by the user's input mode.
func (h *Handler) handleText(userID int64, text string) HandlerFunc {
	switch h.modes.Get(userID) {
	case storage.ModeTranslate:
		return h.translateHandler(userID, text)
	case storage.ModeQuiz:
		return h.quizTypedAnswerHandler(userID, text)
	default:
		return h.askHandler(userID, text)
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// SendTip delivers a daily tip to a subscribed chat.
func (h *Handler) SendTip(chatID int64, tip string) error {
	_, err := h.bot.Send(newHTMLMessage(chatID, formatTip(tip)))
	return err
}
