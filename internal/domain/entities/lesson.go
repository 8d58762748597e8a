package entities

// Lesson is a single topic of the course.
type Lesson struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Objective string          `json:"objective"`
	Sections  []LessonSection `json:"sections"`
}

// LessonSection is one block of lesson content.
type LessonSection struct {
	Heading  string   `json:"heading"`
	Body     string   `json:"body"`
	Examples []string `json:"examples"`
}
