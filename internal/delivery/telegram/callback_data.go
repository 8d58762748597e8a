package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz   = "quiz"
	actionWord   = "word"
	actionFav    = "fav"
	actionLesson = "lesson"
	actionMenu   = "menu"
)

// Quiz sub-actions.
const (
	quizStart   = "start"
	quizSelect  = "select"
	quizNext    = "next"
	quizRestart = "restart"
)

// Favorites sub-actions.
const (
	favAdd    = "add"
	favRemove = "remove"
	favDelete = "del"
	favClear  = "clear"
	favList   = "list"
)

const (
	wordNext   = "next"
	lessonList = "list"
)

// Main menu entries.
const (
	menuLessons   = "lessons"
	menuQuiz      = "quiz"
	menuWord      = "word"
	menuFavorites = "favorites"
	menuTranslate = "translate"
	menuChat      = "chat"
	menuProfile   = "profile"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildQuizStartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizStart}}.encode()
}

// buildQuizSelectCallback builds callback data for choosing an option of the current question.
func buildQuizSelectCallback(optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizSelect, strconv.Itoa(optionIndex)},
	}.encode()
}

func buildQuizNextCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext}}.encode()
}

func buildQuizRestartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart}}.encode()
}

func buildWordNextCallback() string {
	return callbackData{Action: actionWord, Params: []string{wordNext}}.encode()
}

func buildFavAddCallback() string {
	return callbackData{Action: actionFav, Params: []string{favAdd}}.encode()
}

func buildFavRemoveCallback() string {
	return callbackData{Action: actionFav, Params: []string{favRemove}}.encode()
}

// buildFavDeleteCallback builds callback data for deleting the i-th entry of the favorites list.
func buildFavDeleteCallback(index int) string {
	return callbackData{
		Action: actionFav,
		Params: []string{favDelete, strconv.Itoa(index)},
	}.encode()
}

func buildFavClearCallback() string {
	return callbackData{Action: actionFav, Params: []string{favClear}}.encode()
}

func buildFavListCallback() string {
	return callbackData{Action: actionFav, Params: []string{favList}}.encode()
}

// buildLessonCallback builds callback data for opening a lesson.
func buildLessonCallback(id int) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{strconv.Itoa(id)},
	}.encode()
}

func buildLessonListCallback() string {
	return callbackData{Action: actionLesson, Params: []string{lessonList}}.encode()
}

func buildMenuCallback(entry string) string {
	return callbackData{Action: actionMenu, Params: []string{entry}}.encode()
}
