package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

var ErrUnsupportedFormat = errors.New("unsupported question file format")

// QuestionRepository provides the fixed quiz question set.
// Questions are loaded once and validated at construction.
type QuestionRepository struct {
	questions []entities.Question
}

// NewQuestionRepository loads questions from a .json or .xlsx file.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	var (
		questions []entities.Question
		err       error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		questions, err = loadQuestionsJSON(path)
	case ".xlsx":
		questions, err = loadQuestionsXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions in %s: %w", path, entities.ErrNoQuestions)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d in %s: %w", i+1, path, err)
		}
	}

	return &QuestionRepository{questions: questions}, nil
}

// GetAll returns a copy of all questions in quiz order.
func (r *QuestionRepository) GetAll(_ context.Context) ([]entities.Question, error) {
	out := make([]entities.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

func loadQuestionsJSON(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Questions []entities.Question `json:"questions"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	return wrapper.Questions, nil
}

// loadQuestionsXLSX reads the first sheet. Each row is a question: the prompt
// in the first column, options in the following columns and the correct
// answer in the last non-empty column. A header row starting with
// "question" is skipped.
func loadQuestionsXLSX(path string) ([]entities.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var questions []entities.Question
	for i, row := range rows {
		cells := trimRow(row)
		if len(cells) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(cells[0], "question") {
			continue
		}
		if len(cells) < 4 {
			return nil, fmt.Errorf("row %d: need a prompt, two options and an answer, got %d cells", i+1, len(cells))
		}

		questions = append(questions, entities.Question{
			Prompt:        cells[0],
			Options:       cells[1 : len(cells)-1],
			CorrectOption: cells[len(cells)-1],
		})
	}

	return questions, nil
}

// trimRow trims cells and drops empty trailing ones.
func trimRow(row []string) []string {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		cells = append(cells, strings.TrimSpace(c))
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
