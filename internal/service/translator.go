package service

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyText = errors.New("text is empty")

type TranslatorService struct {
	translator Translator
	source     string
	target     string
}

func NewTranslatorService(translator Translator, source, target string) *TranslatorService {
	return &TranslatorService{
		translator: translator,
		source:     source,
		target:     target,
	}
}

// Translate translates text from the source to the target language.
func (s *TranslatorService) Translate(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return s.translator.Translate(ctx, s.source, s.target, text)
}

func (s *TranslatorService) Languages() (source, target string) {
	return s.source, s.target
}
