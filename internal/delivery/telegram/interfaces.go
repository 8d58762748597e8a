package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
)

// BotAPI is the subset of *tgbotapi.BotAPI used by the handler.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type QuizService interface {
	Start(ctx context.Context, userID int64) (service.QuizView, error)
	Current(userID int64) (service.QuizView, error)
	Select(userID int64, optionIndex int) (service.QuizView, error)
	SelectTyped(userID int64, answer string) (service.QuizView, error)
	Advance(userID int64) (service.QuizView, error)
	Restart(userID int64) (service.QuizView, error)
	End(userID int64)
}

type FavoritesService interface {
	Add(ctx context.Context, userID int64, entry entities.FavoriteEntry) error
	Remove(ctx context.Context, userID int64, word string) error
	Clear(ctx context.Context, userID int64) error
	Contains(ctx context.Context, userID int64, word string) bool
	List(ctx context.Context, userID int64) []entities.FavoriteEntry
}

type LookupService interface {
	RandomWord(ctx context.Context) (*entities.WordEntry, error)
}

type TranslatorService interface {
	Translate(ctx context.Context, text string) (string, error)
	Languages() (source, target string)
}

type ChatService interface {
	Ask(ctx context.Context, userID int64, text string) (string, error)
	Reset(userID int64)
}

type LessonService interface {
	List(ctx context.Context) ([]entities.Lesson, error)
	Get(ctx context.Context, id int) (*entities.Lesson, error)
}

type ProgressService interface {
	GetProgress(ctx context.Context, userID int64) (*entities.UserProgress, error)
	MarkLessonViewed(ctx context.Context, userID int64, lessonID int) error
	RecordQuiz(ctx context.Context, userID int64, score, total int) error
}

type TipService interface {
	Random(ctx context.Context) (string, error)
	Subscribe(ctx context.Context, chatID int64) error
	Unsubscribe(ctx context.Context, chatID int64) error
}
