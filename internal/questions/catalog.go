package questions

import (
	"encoding/json"
	"fmt"
	"os"
)

// catalog mirrors the source JSON file, where the answer key is named
// "answer" rather than "correctAnswer".
type catalog struct {
	Lessons []catalogLesson `json:"lessons"`
}

type catalogLesson struct {
	ID        string            `json:"id"`
	Questions []catalogQuestion `json:"questions"`
}

type catalogQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Load reads the question catalog file and converts it to the stored
// representation. Lessons without questions are skipped.
func Load(path string) ([]Lesson, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Lessons) == 0 {
		return nil, fmt.Errorf("catalog %s contains no lessons", path)
	}

	lessons := make([]Lesson, 0, len(c.Lessons))
	for _, src := range c.Lessons {
		if len(src.Questions) == 0 {
			continue
		}
		lesson := Lesson{ID: src.ID, Questions: make([]Question, 0, len(src.Questions))}
		for _, q := range src.Questions {
			lesson.Questions = append(lesson.Questions, Question{
				Question:      q.Question,
				Options:       q.Options,
				CorrectAnswer: q.Answer,
			})
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}
