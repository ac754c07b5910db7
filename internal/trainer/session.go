package trainer

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownQuestion is returned when answering a question id the quiz does not have.
var ErrUnknownQuestion = errors.New("unknown question")

// Session tracks trainer attempts.
type Session struct {
	Attempts int
	Correct  int
}

// Check records a guess for p and reports whether it named the right pattern.
func (s *Session) Check(p Prompt, guessID string) bool {
	ok := guessID == p.PatternID
	s.Attempts++
	if ok {
		s.Correct++
	}
	return ok
}

// Accuracy is the rounded percentage of correct guesses; 0 before any attempt.
func (s *Session) Accuracy() int {
	if s.Attempts == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Attempts) * 100))
}

// Quiz holds the selected option and correctness for each answered question.
type Quiz struct {
	questions []Question
	answers   map[string]string
	results   map[string]bool
}

// NewQuiz starts an unanswered quiz over questions.
func NewQuiz(questions []Question) *Quiz {
	q := &Quiz{questions: questions}
	q.Reset()
	return q
}

// Questions returns the quiz questions in order.
func (q *Quiz) Questions() []Question { return q.questions }

// Answer selects option for the question; answering again replaces the
// previous choice.
func (q *Quiz) Answer(questionID, option string) (bool, error) {
	for _, qs := range q.questions {
		if qs.ID != questionID {
			continue
		}
		ok := option == qs.Answer
		q.answers[questionID] = option
		q.results[questionID] = ok
		return ok, nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
}

// Selected returns the option chosen for a question, if any.
func (q *Quiz) Selected(questionID string) (string, bool) {
	v, ok := q.answers[questionID]
	return v, ok
}

// Score counts correctly answered questions.
func (q *Quiz) Score() int {
	n := 0
	for _, ok := range q.results {
		if ok {
			n++
		}
	}
	return n
}

// Reset clears every answer.
func (q *Quiz) Reset() {
	q.answers = make(map[string]string)
	q.results = make(map[string]bool)
}
