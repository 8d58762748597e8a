package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/repository"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// lastText returns the text of the last sent message or edit.
func (f *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("nothing was sent")
	}
	switch m := f.sent[len(f.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	default:
		t.Fatalf("unexpected chattable %T", m)
		return ""
	}
}

// lastNotice returns the toast text of the last callback answer.
func (f *fakeBot) lastNotice(t *testing.T) string {
	t.Helper()
	if len(f.requests) == 0 {
		t.Fatal("callback was not answered")
	}
	cb, ok := f.requests[len(f.requests)-1].(tgbotapi.CallbackConfig)
	if !ok {
		t.Fatalf("unexpected request %T", f.requests[len(f.requests)-1])
	}
	return cb.Text
}

type questionBank []entities.Question

func (b questionBank) GetAll(context.Context) ([]entities.Question, error) { return b, nil }

type fixedLookup struct {
	entry entities.WordEntry
	err   error
}

func (f fixedLookup) RandomWord(context.Context) (*entities.WordEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e := f.entry
	return &e, nil
}

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, _, target, text string) (string, error) {
	return target + ":" + text, nil
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, history []entities.ChatMessage) (string, error) {
	return "you said " + history[len(history)-1].Text, nil
}

type noLessons struct{}

func (noLessons) List(context.Context) ([]entities.Lesson, error) {
	return []entities.Lesson{{ID: 1, Title: "Greetings"}}, nil
}

func (noLessons) Get(_ context.Context, id int) (*entities.Lesson, error) {
	if id != 1 {
		return nil, repository.ErrLessonNotFound
	}
	return &entities.Lesson{ID: 1, Title: "Greetings"}, nil
}

type testEnv struct {
	bot       *fakeBot
	handler   *Handler
	modes     *storage.ModeStorage
	favorites *service.FavoritesService
	progress  *service.ProgressService
}

func newTestEnv(lookup LookupService) *testEnv {
	kv := storage.NewMemoryKV()
	bot := &fakeBot{}
	modes := storage.NewModeStorage()

	bank := questionBank{
		{Prompt: "Greeting someone?", Options: []string{"Hello", "Goodbye"}, CorrectOption: "Hello"},
		{Prompt: "2+2?", Options: []string{"3", "4"}, CorrectOption: "4"},
	}

	favorites := service.NewFavoritesService(kv, nil)
	progress := service.NewProgressService(repository.NewProgressRepository(kv))

	svc := Services{
		Quiz:       service.NewQuizService(bank, storage.NewQuizStorage()),
		Favorites:  favorites,
		Lookup:     lookup,
		Translator: service.NewTranslatorService(echoTranslator{}, "en", "hi"),
		Chat:       service.NewChatService(echoGenerator{}, storage.NewChatStorage(10)),
		Lessons:    noLessons{},
		Progress:   progress,
		Tips:       service.NewTipService(repository.NewTipRepository("Keep going!"), repository.NewSubscriberRepository(kv), nil),
	}

	return &testEnv{
		bot:       bot,
		handler:   NewHandler(bot, nil, svc, storage.NewLookupStorage(), modes),
		modes:     modes,
		favorites: favorites,
		progress:  progress,
	}
}

const testUser = int64(42)

func (e *testEnv) command(text string) {
	cmd := strings.SplitN(text, " ", 2)[0]
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			From:     &tgbotapi.User{ID: testUser},
			Chat:     &tgbotapi.Chat{ID: testUser},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		},
	})
}

func (e *testEnv) text(text string) {
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			From: &tgbotapi.User{ID: testUser},
			Chat: &tgbotapi.Chat{ID: testUser},
		},
	})
}

func (e *testEnv) callback(data string) {
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: &tgbotapi.User{ID: testUser},
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: 1,
				Chat:      &tgbotapi.Chat{ID: testUser},
			},
		},
	})
}

func TestQuizFlow(t *testing.T) {
	e := newTestEnv(fixedLookup{})

	e.command("/quiz")
	if !strings.Contains(e.bot.lastText(t), "Question 1/2") {
		t.Fatalf("expected first question, got %q", e.bot.lastText(t))
	}
	if e.modes.Get(testUser) != storage.ModeQuiz {
		t.Error("expected quiz input mode")
	}

	e.callback(buildQuizNextCallback())
	if got := e.bot.lastNotice(t); got != msgSelectFirst {
		t.Errorf("expected select-first notice, got %q", got)
	}

	e.callback(buildQuizSelectCallback(0))
	if !strings.Contains(e.bot.lastText(t), "Your answer: <b>Hello</b>") {
		t.Errorf("expected selection to be shown, got %q", e.bot.lastText(t))
	}

	e.callback(buildQuizNextCallback())
	if !strings.Contains(e.bot.lastText(t), "Question 2/2") {
		t.Fatalf("expected second question, got %q", e.bot.lastText(t))
	}

	// Typed answers are matched against the options.
	e.text("3")
	e.callback(buildQuizNextCallback())
	if !strings.Contains(e.bot.lastText(t), "Your Score: <b>1 / 2</b>") {
		t.Fatalf("expected result screen, got %q", e.bot.lastText(t))
	}
	if e.modes.Get(testUser) != storage.ModeChat {
		t.Error("expected chat mode after the quiz")
	}

	p, err := e.progress.GetProgress(context.Background(), testUser)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if p.QuizzesCompleted != 1 || p.LastScore != 1 || p.LastTotal != 2 {
		t.Errorf("unexpected progress %+v", p)
	}

	e.callback(buildQuizNextCallback())
	if got := e.bot.lastNotice(t); got != msgQuizAlreadyDone {
		t.Errorf("expected finished notice, got %q", got)
	}

	e.callback(buildQuizRestartCallback())
	if !strings.Contains(e.bot.lastText(t), "Question 1/2") {
		t.Errorf("expected restart to show the first question, got %q", e.bot.lastText(t))
	}
}

func TestQuizCallbackWithoutSession(t *testing.T) {
	e := newTestEnv(fixedLookup{})

	e.callback(buildQuizSelectCallback(0))
	if got := e.bot.lastText(t); got != msgQuizExpired {
		t.Errorf("expected expired message, got %q", got)
	}
}

func TestWordFavorites(t *testing.T) {
	word := entities.WordEntry{Word: "Run", Definition: "move fast", TranslatedDefinition: "दौड़ना", PartOfSpeech: "verb"}
	e := newTestEnv(fixedLookup{entry: word})
	ctx := context.Background()

	e.command("/word")
	if !strings.Contains(e.bot.lastText(t), "<b>Run</b>") {
		t.Fatalf("expected word to be shown, got %q", e.bot.lastText(t))
	}

	e.callback(buildFavAddCallback())
	if got := e.bot.lastNotice(t); got != msgFavoriteAdded {
		t.Errorf("expected added notice, got %q", got)
	}
	if !e.favorites.Contains(ctx, testUser, "run") {
		t.Fatal("expected run in favorites")
	}

	e.callback(buildFavAddCallback())
	if got := e.bot.lastNotice(t); got != msgFavoriteExists {
		t.Errorf("expected already-saved notice, got %q", got)
	}
	if n := len(e.favorites.List(ctx, testUser)); n != 1 {
		t.Errorf("expected one favorite, got %d", n)
	}

	e.command("/favorites")
	if !strings.Contains(e.bot.lastText(t), "1. <b>Run</b>") {
		t.Errorf("unexpected favorites list %q", e.bot.lastText(t))
	}

	e.callback(buildFavDeleteCallback(0))
	if e.favorites.Contains(ctx, testUser, "run") {
		t.Error("expected run to be removed")
	}
	if got := e.bot.lastText(t); got != msgFavoritesEmpty {
		t.Errorf("expected empty list, got %q", got)
	}
}

type unreachableKV struct{}

func (unreachableKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (unreachableKV) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestFavoritesUnavailable(t *testing.T) {
	word := entities.WordEntry{Word: "Run", Definition: "move fast"}
	e := newTestEnv(fixedLookup{entry: word})
	e.handler.svc.Favorites = service.NewFavoritesService(unreachableKV{}, nil)

	e.command("/word")
	e.callback(buildFavAddCallback())
	if got := e.bot.lastNotice(t); got != msgFavoritesUnavailable {
		t.Errorf("expected unavailable notice, got %q", got)
	}

	e.callback(buildFavClearCallback())
	if got := e.bot.lastNotice(t); got != msgFavoritesUnavailable {
		t.Errorf("expected unavailable notice on clear, got %q", got)
	}
}

func TestWordLookupFailure(t *testing.T) {
	e := newTestEnv(fixedLookup{err: errors.New("offline")})

	e.command("/word")
	if got := e.bot.lastText(t); got != msgWordUnavailable {
		t.Errorf("expected lookup failure message, got %q", got)
	}

	e.callback(buildFavAddCallback())
	if got := e.bot.lastNotice(t); got != msgNoCurrentWord {
		t.Errorf("expected no-word notice, got %q", got)
	}
}

func TestTextRouting(t *testing.T) {
	e := newTestEnv(fixedLookup{})

	e.text("hello")
	if got := e.bot.lastText(t); got != "you said hello" {
		t.Errorf("expected chatbot reply, got %q", got)
	}

	e.command("/translate")
	if e.modes.Get(testUser) != storage.ModeTranslate {
		t.Fatal("expected translator mode")
	}
	e.text("good morning")
	if got := e.bot.lastText(t); got != "🌐 hi:good morning" {
		t.Errorf("expected translation, got %q", got)
	}

	e.command("/translate thank you")
	if got := e.bot.lastText(t); got != "🌐 hi:thank you" {
		t.Errorf("expected inline translation, got %q", got)
	}

	e.command("/ask")
	if e.modes.Get(testUser) != storage.ModeChat {
		t.Error("expected chat mode after /ask")
	}
}

func TestLessonCallbackMarksProgress(t *testing.T) {
	e := newTestEnv(fixedLookup{})

	e.callback(buildLessonCallback(1))
	if !strings.Contains(e.bot.lastText(t), "Greetings") {
		t.Errorf("expected lesson text, got %q", e.bot.lastText(t))
	}

	p, _ := e.progress.GetProgress(context.Background(), testUser)
	if len(p.LessonsViewed) != 1 || p.LessonsViewed[0] != 1 {
		t.Errorf("expected lesson 1 viewed, got %+v", p.LessonsViewed)
	}

	e.callback(buildLessonCallback(9))
	if got := e.bot.lastNotice(t); got != msgLessonNotFound {
		t.Errorf("expected not found notice, got %q", got)
	}
}

func TestTipsSubscription(t *testing.T) {
	e := newTestEnv(fixedLookup{})

	e.command("/tips on")
	if got := e.bot.lastText(t); got != msgTipsSubscribed {
		t.Errorf("expected subscribed message, got %q", got)
	}
	e.command("/tips maybe")
	if got := e.bot.lastText(t); got != msgTipsUsage {
		t.Errorf("expected usage message, got %q", got)
	}
	e.command("/tip")
	if !strings.Contains(e.bot.lastText(t), "Keep going!") {
		t.Errorf("expected tip, got %q", e.bot.lastText(t))
	}
	e.command("/nope")
	if got := e.bot.lastText(t); got != msgUnknownCommand {
		t.Errorf("expected unknown command message, got %q", got)
	}
}
