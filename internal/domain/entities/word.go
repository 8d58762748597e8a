package entities

// WordEntry is the result of a random word lookup.
type WordEntry struct {
	Word                 string
	Definition           string
	TranslatedDefinition string
	PartOfSpeech         string
}

// ToFavorite converts the lookup result into a favorite entry.
func (w WordEntry) ToFavorite() FavoriteEntry {
	return FavoriteEntry{
		Word:                 w.Word,
		PrimaryDefinition:    w.Definition,
		TranslatedDefinition: w.TranslatedDefinition,
		PartOfSpeech:         w.PartOfSpeech,
	}
}

// Definition is the first dictionary sense of a word.
type Definition struct {
	PartOfSpeech string
	Text         string
}
