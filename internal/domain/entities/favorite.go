package entities

import (
	"errors"
	"strings"
)

var ErrEmptyWord = errors.New("favorite word is empty")

// FavoriteEntry is a saved word lookup.
type FavoriteEntry struct {
	Word                 string `json:"word"`
	PrimaryDefinition    string `json:"primaryDefinition"`
	TranslatedDefinition string `json:"translatedDefinition"`
	PartOfSpeech         string `json:"partOfSpeech"`
}

// FavoriteKey returns the identity key for word: its lowercase form.
func FavoriteKey(word string) string {
	return strings.ToLower(word)
}

// Key returns the identity key of the entry.
func (e FavoriteEntry) Key() string {
	return FavoriteKey(e.Word)
}

func (e FavoriteEntry) Validate() error {
	if e.Word == "" {
		return ErrEmptyWord
	}
	return nil
}
