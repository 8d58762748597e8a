package entities

import "time"

// UserProgress aggregates a learner's activity for the profile view.
type UserProgress struct {
	LessonsViewed    []int     `json:"lessonsViewed"`    // lesson IDs in first-view order
	QuizzesCompleted int       `json:"quizzesCompleted"` // finished quiz runs
	Points           int       `json:"points"`           // sum of scores over all runs
	AnswersTotal     int       `json:"answersTotal"`     // questions answered over all runs
	BestScore        int       `json:"bestScore"`
	LastScore        int       `json:"lastScore"`
	LastTotal        int       `json:"lastTotal"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// MarkLessonViewed records a lesson view and reports whether it was new.
func (p *UserProgress) MarkLessonViewed(lessonID int, now time.Time) bool {
	for _, id := range p.LessonsViewed {
		if id == lessonID {
			return false
		}
	}
	p.LessonsViewed = append(p.LessonsViewed, lessonID)
	p.UpdatedAt = now
	return true
}

// RecordQuiz adds a finished quiz run.
func (p *UserProgress) RecordQuiz(score, total int, now time.Time) {
	p.QuizzesCompleted++
	p.Points += score
	p.AnswersTotal += total
	p.LastScore = score
	p.LastTotal = total
	if score > p.BestScore {
		p.BestScore = score
	}
	p.UpdatedAt = now
}

// Accuracy returns the share of correct answers in percent.
func (p *UserProgress) Accuracy() float64 {
	if p.AnswersTotal == 0 {
		return 0
	}
	return float64(p.Points) / float64(p.AnswersTotal) * 100
}
