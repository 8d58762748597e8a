package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/config"
	"github.com/aliskhannn/lingvo-bot/internal/delivery/telegram"
	"github.com/aliskhannn/lingvo-bot/internal/infra/dictionary"
	"github.com/aliskhannn/lingvo-bot/internal/infra/gemini"
	"github.com/aliskhannn/lingvo-bot/internal/infra/lingva"
	"github.com/aliskhannn/lingvo-bot/internal/logger"
	"github.com/aliskhannn/lingvo-bot/internal/repository"
	"github.com/aliskhannn/lingvo-bot/internal/scheduler"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "lessons", Description: "Browse the lessons"},
		{Command: "quiz", Description: "Take the quiz"},
		{Command: "word", Description: "Random word with its meaning"},
		{Command: "favorites", Description: "Your saved words"},
		{Command: "translate", Description: "Translate text"},
		{Command: "ask", Description: "Talk to the AI chatbot"},
		{Command: "reset_chat", Description: "Forget the chatbot conversation"},
		{Command: "profile", Description: "Your progress"},
		{Command: "tip", Description: "A motivational tip"},
		{Command: "tips", Description: "Daily tips on/off"},
		{Command: "help", Description: "Help"},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openKV(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeKV()

	// Initialize repositories.
	questionRepo, err := repository.NewQuestionRepository(cfg.QuestionsPath)
	if err != nil {
		lg.Fatal("failed to load questions", zap.Error(err))
	}

	lessonRepo, err := repository.NewLessonRepository(cfg.LessonsPath)
	if err != nil {
		lg.Fatal("failed to load lessons", zap.Error(err))
	}

	progressRepo := repository.NewProgressRepository(kv)
	subscriberRepo := repository.NewSubscriberRepository(kv)
	tipRepo := repository.NewTipRepository()

	// External APIs.
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	dictClient := dictionary.NewClient(httpClient, cfg.Dictionary.RandomWordURL, cfg.Dictionary.BaseURL)
	lingvaClient := lingva.NewClient(httpClient, cfg.Translator.BaseURL)
	geminiClient := gemini.NewClient(httpClient, cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey)
	if cfg.Gemini.APIKey == "" {
		lg.Warn("GEMINI_API_KEY is not set, chatbot replies will fail")
	}

	// In-memory state.
	quizStorage := storage.NewQuizStorage()
	lookupStorage := storage.NewLookupStorage()
	chatStorage := storage.NewChatStorage(cfg.Chat.HistoryLimit)
	modeStorage := storage.NewModeStorage()

	retry := service.RetryPolicy{
		MaxAttempts:    cfg.Lookup.MaxAttempts,
		InitialBackoff: cfg.Lookup.InitialBackoff,
		MaxBackoff:     cfg.Lookup.MaxBackoff,
	}

	tipService := service.NewTipService(tipRepo, subscriberRepo, lg)
	favoritesService := service.NewFavoritesService(kv, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		telegram.Services{
			Quiz:       service.NewQuizService(questionRepo, quizStorage),
			Favorites:  favoritesService,
			Lookup:     service.NewLookupService(dictClient, dictClient, lingvaClient, cfg.Translator.Source, cfg.Translator.Target, retry, lg),
			Translator: service.NewTranslatorService(lingvaClient, cfg.Translator.Source, cfg.Translator.Target),
			Chat:       service.NewChatService(geminiClient, chatStorage),
			Lessons:    service.NewLessonService(lessonRepo),
			Progress:   service.NewProgressService(progressRepo),
			Tips:       tipService,
		},
		lookupStorage,
		modeStorage,
	)
	tipService.SetNotifier(handler)

	go func() {
		if err := tipService.Start(ctx, cfg.Tips.DailyAt); err != nil {
			lg.Error("daily tips stopped", zap.Error(err))
		}
	}()

	sched := scheduler.New(map[string]scheduler.Pruner{
		"quiz":      quizStorage,
		"lookup":    lookupStorage,
		"chat":      chatStorage,
		"favorites": favoritesService,
	}, cfg.Housekeeping.IdleTTL, lg)
	if err := sched.Start(cfg.Housekeeping.Interval); err != nil {
		lg.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
