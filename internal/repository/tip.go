package repository

import (
	"context"
	"errors"
	"math/rand"
)

var ErrNoTips = errors.New("no tips available")

var defaultTips = []string{
	"Believe in yourself and all that you are.",
	"The only way to do great work is to love what you do.",
	"Success is not final, failure is not fatal: it is the courage to continue that counts.",
	"Your limitation is only your imagination.",
	"Great things never come from comfort zones.",
	"Dream it. Wish it. Do it.",
	"Success doesn't just find you. You have to go out and get it.",
	"The harder you work for something, the greater you'll feel when you achieve it.",
	"Don't stop when you're tired. Stop when you're done.",
	"Wake up with determination. Go to bed with satisfaction.",
}

// TipRepository serves motivational tips from an in-memory list.
type TipRepository struct {
	tips []string
}

// NewTipRepository uses the built-in tips when none are given.
func NewTipRepository(tips ...string) *TipRepository {
	if len(tips) == 0 {
		tips = defaultTips
	}
	return &TipRepository{tips: tips}
}

// GetRandom retrieves a random tip.
func (r *TipRepository) GetRandom(_ context.Context) (string, error) {
	if len(r.tips) == 0 {
		return "", ErrNoTips
	}
	return r.tips[rand.Intn(len(r.tips))], nil
}
