package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

var ErrEmptyWordList = errors.New("word source returned no word")

type WordSource interface {
	RandomWord(ctx context.Context) (string, error)
}

type Dictionary interface {
	Define(ctx context.Context, word string) (entities.Definition, error)
}

type Translator interface {
	Translate(ctx context.Context, source, target, text string) (string, error)
}

// LookupService fetches a random word with its definition and the
// definition translated into the learner's language.
type LookupService struct {
	words      WordSource
	dictionary Dictionary
	translator Translator
	source     string
	target     string
	retry      RetryPolicy
	logger     *zap.Logger
}

func NewLookupService(
	words WordSource,
	dictionary Dictionary,
	translator Translator,
	source, target string,
	retry RetryPolicy,
	logger *zap.Logger,
) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{
		words:      words,
		dictionary: dictionary,
		translator: translator,
		source:     source,
		target:     target,
		retry:      retry,
		logger:     logger,
	}
}

// RandomWord runs the whole word, definition and translation chain under the
// retry policy. A word without a dictionary entry fails the attempt, so the
// next attempt picks another word.
func (s *LookupService) RandomWord(ctx context.Context) (*entities.WordEntry, error) {
	var (
		entry   *entities.WordEntry
		attempt int
	)

	err := s.retry.Do(ctx, func(ctx context.Context) error {
		attempt++

		e, err := s.lookupOnce(ctx)
		if err != nil {
			s.logger.Warn("word lookup failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}

		entry = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("random word after %d attempts: %w", attempt, err)
	}

	return entry, nil
}

func (s *LookupService) lookupOnce(ctx context.Context) (*entities.WordEntry, error) {
	word, err := s.words.RandomWord(ctx)
	if err != nil {
		return nil, fmt.Errorf("get random word: %w", err)
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWordList
	}

	def, err := s.dictionary.Define(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("define %q: %w", word, err)
	}

	translated, err := s.translator.Translate(ctx, s.source, s.target, def.Text)
	if err != nil {
		return nil, fmt.Errorf("translate definition of %q: %w", word, err)
	}

	return &entities.WordEntry{
		Word:                 word,
		Definition:           def.Text,
		TranslatedDefinition: translated,
		PartOfSpeech:         def.PartOfSpeech,
	}, nil
}
