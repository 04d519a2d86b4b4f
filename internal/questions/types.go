package questions

import "errors"

// ErrNotFound is returned when a question set does not exist.
var ErrNotFound = errors.New("question set not found")

// Question is a single multiple-choice question as stored.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Lesson is a named set of questions, keyed by the lesson id from the
// source catalog.
type Lesson struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}
