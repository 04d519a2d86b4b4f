package questions

// QuestionStore persists question sets.
type QuestionStore interface {
	Seed(lessons []Lesson) error
	Get(id string) (*Lesson, error)
	IDs() ([]string, error)
	Clear()
}
