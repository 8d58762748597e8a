// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
)

const (
	msgWelcome = "👋 <b>Welcome to Lingvo!</b>\n\n" +
		"I will help you practise English every day:\n" +
		"📚 short lessons, 🎯 a quiz, 🔤 a random word with its meaning,\n" +
		"🌐 a translator and 🤖 an AI chat partner.\n\n" +
		"Pick something below or type /help."

	msgHelp = "<b>Commands</b>\n\n" +
		"/lessons — browse the lessons\n" +
		"/quiz — test what you have learned\n" +
		"/word — get a random word with its meaning\n" +
		"/favorites — your saved words\n" +
		"/translate [text] — translate text, or switch to translator mode\n" +
		"/ask [text] — talk to the AI chatbot\n" +
		"/reset_chat — forget the chatbot conversation\n" +
		"/profile — your progress\n" +
		"/tip — a motivational tip\n" +
		"/tips on|off — daily tip subscription\n\n" +
		"Plain messages go to the chatbot, or to the translator in translator mode."

	msgUnknownCommand = "Unknown command. Type /help to see what I can do."
	msgInternalError  = "Something went wrong. Please try again later."
)

// Quiz messages.
const (
	msgQuizIntro        = "📘 This quiz is based on the lessons. It's a fun way to test your understanding and practise what you've learned!"
	msgNoQuestions      = "There are no quiz questions yet. Please come back later."
	msgQuizExpired      = "This quiz is no longer active. Start a new one with /quiz."
	msgSelectFirst      = "Choose an answer first."
	msgInvalidOption    = "That option is not available."
	msgQuizAlreadyDone  = "The quiz is finished. Tap “Restart Quiz” to try again."
	msgNoMatchingOption = "I couldn't match that to any option. Type one of the options or tap a button."
)

var quizEncouragements = []string{
	"✨ Keep going, you're doing amazing!",
	"💡 Every question is a step forward!",
	"🚀 Believe in your learning journey!",
	"📚 Great minds start with small lessons!",
	"🔥 One step closer to mastering English!",
}

// Word and favorites messages.
const (
	msgWordUnavailable      = "Failed to fetch a word or its translation after several attempts. Please try again."
	msgNoCurrentWord        = "There is no word to save. Get one with /word."
	msgFavoriteAdded        = "⭐ Added to favorites"
	msgFavoriteExists       = "Already in your favorites"
	msgFavoriteRemoved      = "Removed from favorites"
	msgFavoritesCleared     = "Favorites cleared"
	msgFavoritesEmpty       = "⭐ You have no favorite words yet.\nSave some with /word."
	msgFavoriteNotStored    = "Saved for now, but it could not be stored permanently."
	msgFavoritesUnavailable = "Your favorites are unavailable right now. Please try again later."
)

// Translator and chat messages.
const (
	msgTranslateMode        = "🌐 Translator mode is on (%s → %s). Send me any text.\nUse /ask to go back to the chatbot."
	msgTranslateUnavailable = "Translation failed. Please try again."
	msgChatMode             = "🤖 Chat mode is on. Ask me anything and practise your English!"
	msgChatUnavailable      = "Error fetching response."
	msgChatReset            = "🧹 Conversation cleared."
)

// Lesson, profile and tip messages.
const (
	msgNoLessons        = "There are no lessons yet."
	msgLessonNotFound   = "This lesson does not exist."
	msgTipsSubscribed   = "🔔 You will get a motivational tip every day."
	msgTipsUnsubscribed = "🔕 Daily tips are off."
	msgTipsUsage        = "Use /tips on or /tips off."
)

// formatQuizQuestion renders the current question of a running quiz.
func formatQuizQuestion(v service.QuizView) string {
	var sb strings.Builder

	if v.Index == 0 && !v.HasSelection {
		sb.WriteString(msgQuizIntro)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("<b>Question %d/%d</b>\n", v.Index+1, v.Total))
	sb.WriteString(buildProgressBar(v.Progress, 10))
	sb.WriteString("\n\n")
	sb.WriteString(esc(v.Question.Prompt))

	if v.HasSelection {
		sb.WriteString(fmt.Sprintf("\n\nYour answer: <b>%s</b>", esc(v.Selected)))
	}

	sb.WriteString("\n\n<i>")
	sb.WriteString(quizEncouragements[v.Index%len(quizEncouragements)])
	sb.WriteString("</i>")

	return sb.String()
}

// formatQuizResult renders the final screen of a finished quiz.
func formatQuizResult(v service.QuizView) string {
	return fmt.Sprintf(
		"🎉 <b>Quiz Completed!</b>\n\n%s\nYour Score: <b>%d / %d</b>",
		buildProgressBar(v.Progress, 10),
		v.Score,
		v.Total,
	)
}

func formatQuiz(v service.QuizView) string {
	if v.Finished {
		return formatQuizResult(v)
	}
	return formatQuizQuestion(v)
}

// formatWord renders a looked-up word.
func formatWord(w entities.WordEntry, source, target string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔤 <b>%s</b>", esc(w.Word)))
	if w.PartOfSpeech != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", esc(w.PartOfSpeech)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("<b>Definition (%s):</b> %s\n", esc(source), esc(w.Definition)))
	sb.WriteString(fmt.Sprintf("<b>Definition (%s):</b> %s", esc(target), esc(w.TranslatedDefinition)))

	return sb.String()
}

// formatFavorites renders the saved words of a user.
func formatFavorites(entries []entities.FavoriteEntry) string {
	if len(entries) == 0 {
		return msgFavoritesEmpty
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⭐ <b>Your favorites (%d)</b>\n", len(entries)))

	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("\n%d. <b>%s</b>", i+1, esc(e.Word)))
		if e.PartOfSpeech != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", esc(e.PartOfSpeech)))
		}
		if e.PrimaryDefinition != "" {
			sb.WriteString("\n   " + esc(e.PrimaryDefinition))
		}
		if e.TranslatedDefinition != "" {
			sb.WriteString("\n   " + esc(e.TranslatedDefinition))
		}
	}

	return sb.String()
}

func formatLessonList(lessons []entities.Lesson) string {
	if len(lessons) == 0 {
		return msgNoLessons
	}

	var sb strings.Builder
	sb.WriteString("📚 <b>Start Learning</b>\n")
	for _, l := range lessons {
		sb.WriteString(fmt.Sprintf("\n<b>%d. %s</b>\n<i>%s</i>\n", l.ID, esc(l.Title), esc(l.Objective)))
	}

	return sb.String()
}

func formatLesson(l entities.Lesson) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<b>%s</b>\n<i>%s</i>\n", esc(l.Title), esc(l.Objective)))

	for _, s := range l.Sections {
		sb.WriteString("\n")
		if s.Heading != "" {
			sb.WriteString(fmt.Sprintf("<b>%s</b>\n", esc(s.Heading)))
		}
		if s.Body != "" {
			sb.WriteString(esc(s.Body) + "\n")
		}
		for _, ex := range s.Examples {
			sb.WriteString(fmt.Sprintf("• <i>%s</i>\n", esc(ex)))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatProfile renders the learning progress of a user.
func formatProfile(p *entities.UserProgress, totalLessons, favorites int) string {
	lastRun := "—"
	if p.LastTotal > 0 {
		lastRun = fmt.Sprintf("%d / %d", p.LastScore, p.LastTotal)
	}

	lessonShare := 0.0
	if totalLessons > 0 {
		lessonShare = float64(len(p.LessonsViewed)) / float64(totalLessons)
	}

	return fmt.Sprintf(
		"👤 <b>Your profile</b>\n\n"+
			"📚 <b>Lessons opened:</b> %d / %d\n%s\n\n"+
			"🎯 <b>Quizzes completed:</b> %d\n"+
			"🏆 <b>Best score:</b> %d\n"+
			"🕐 <b>Last quiz:</b> %s\n"+
			"✅ <b>Accuracy:</b> %.1f%%\n\n"+
			"⭐ <b>Favorite words:</b> %d",
		len(p.LessonsViewed), totalLessons,
		buildProgressBar(lessonShare, 10),
		p.QuizzesCompleted,
		p.BestScore,
		lastRun,
		p.Accuracy(),
		favorites,
	)
}

func formatTip(tip string) string {
	return "💡 <b>Tip of the day</b>\n\n<i>" + esc(tip) + "</i>"
}
