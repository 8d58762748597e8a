package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
)

const (
	markSelected   = "🔘 "
	markUnselected = "⚪ "
)

// buildMainMenuKeyboard builds the keyboard shown on /start.
func buildMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Lessons", buildMenuCallback(menuLessons)),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Quiz", buildMenuCallback(menuQuiz)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔤 Random word", buildMenuCallback(menuWord)),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Favorites", buildMenuCallback(menuFavorites)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌐 Translator", buildMenuCallback(menuTranslate)),
			tgbotapi.NewInlineKeyboardButtonData("🤖 AI chat", buildMenuCallback(menuChat)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Profile", buildMenuCallback(menuProfile)),
		),
	)
}

// buildQuizKeyboard builds the keyboard for a quiz question or its result screen.
func buildQuizKeyboard(v service.QuizView) tgbotapi.InlineKeyboardMarkup {
	if v.Finished {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Restart Quiz", buildQuizRestartCallback()),
			),
		)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range v.Question.Options {
		mark := markUnselected
		if v.HasSelection && option == v.Selected {
			mark = markSelected
		}
		button := tgbotapi.NewInlineKeyboardButtonData(mark+option, buildQuizSelectCallback(i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	if v.HasSelection {
		label := "Next ▶️"
		if v.Index == v.Total-1 {
			label = "Finish 🏁"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizNextCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizStartKeyboard offers a new quiz when the previous one is gone.
func buildQuizStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizStartCallback()),
		),
	)
}

// buildWordKeyboard builds the keyboard under a looked-up word.
func buildWordKeyboard(isFavorite bool) tgbotapi.InlineKeyboardMarkup {
	fav := tgbotapi.NewInlineKeyboardButtonData("☆ Add to favorites", buildFavAddCallback())
	if isFavorite {
		fav = tgbotapi.NewInlineKeyboardButtonData("★ Remove from favorites", buildFavRemoveCallback())
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(fav),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Another word", buildWordNextCallback()),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Favorites", buildFavListCallback()),
		),
	)
}

// buildFavoritesKeyboard builds one delete button per entry plus a clear button.
func buildFavoritesKeyboard(entries []entities.FavoriteEntry) *tgbotapi.InlineKeyboardMarkup {
	if len(entries) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, e := range entries {
		label := fmt.Sprintf("✖ %d. %s", i+1, e.Word)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildFavDeleteCallback(i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Clear all", buildFavClearCallback()),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildLessonListKeyboard builds two lesson buttons per row.
func buildLessonListKeyboard(lessons []entities.Lesson) *tgbotapi.InlineKeyboardMarkup {
	if len(lessons) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, l := range lessons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d. %s", l.ID, l.Title), buildLessonCallback(l.ID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildLessonKeyboard builds the navigation under an open lesson.
func buildLessonKeyboard(lessons []entities.Lesson, currentID int) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	for i, l := range lessons {
		if l.ID != currentID {
			continue
		}
		if i > 0 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildLessonCallback(lessons[i-1].ID)))
		}
		if i < len(lessons)-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildLessonCallback(lessons[i+1].ID)))
		}
		break
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📚 All lessons", buildLessonListCallback()),
		tgbotapi.NewInlineKeyboardButtonData("🎯 Quiz", buildQuizStartCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
