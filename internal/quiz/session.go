package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuiquiz/internal/bank"
	"github.com/verte-zerg/tuiquiz/internal/model"
)

// Session is one in-progress or completed quiz attempt.
// SelectedAnswers and OptionOrder are keyed by question id.
type Session struct {
	ID              string           `json:"id"`
	Bank            string           `json:"bank"`
	StartedAt       time.Time        `json:"startedAt"`
	CurrentIndex    int              `json:"currentIndex"`
	SelectedAnswers map[int]string   `json:"selectedAnswers"`
	LimitID         int              `json:"limitId"`
	ShowAnswers     bool             `json:"showAnswers"`
	Questions       []model.Question `json:"shuffledQuestions"`
	OptionOrder     map[int][]string `json:"shuffledVariantsMap"`
}

// NewSession derives a fresh session from the bank: questions with id <= limitID
// in random order, each with its own random option order.
func NewSession(questions []model.Question, bankName string, limitID int, sh *Shuffler) Session {
	ordered := sh.Questions(bank.FilterByMaxID(questions, limitID))
	order := make(map[int][]string, len(ordered))
	for _, q := range ordered {
		order[q.ID] = sh.Strings(q.Variants)
	}
	return Session{
		ID:              uuid.NewString(),
		Bank:            bankName,
		StartedAt:       time.Now(),
		CurrentIndex:    0,
		SelectedAnswers: map[int]string{},
		LimitID:         limitID,
		ShowAnswers:     false,
		Questions:       ordered,
		OptionOrder:     order,
	}
}

// Total returns the number of questions in the session.
func (s *Session) Total() int {
	return len(s.Questions)
}

// Current returns the active question, if any.
func (s *Session) Current() (model.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return model.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Options returns the display order of q's variants.
func (s *Session) Options(q model.Question) []string {
	if order, ok := s.OptionOrder[q.ID]; ok && len(order) > 0 {
		return order
	}
	return q.Variants
}

// Selected returns the recorded answer for question id.
func (s *Session) Selected(id int) (string, bool) {
	answer, ok := s.SelectedAnswers[id]
	return answer, ok
}

// RecordAnswer stores answer for the current question. Answers are write-once;
// it reports whether anything was recorded.
func (s *Session) RecordAnswer(answer string) bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	if _, done := s.SelectedAnswers[q.ID]; done {
		return false
	}
	if s.SelectedAnswers == nil {
		s.SelectedAnswers = map[int]string{}
	}
	s.SelectedAnswers[q.ID] = answer
	return true
}

// Advance moves to the next question unless already at the last one.
func (s *Session) Advance() bool {
	if s.CurrentIndex >= len(s.Questions)-1 {
		return false
	}
	s.CurrentIndex++
	return true
}

// Retreat moves to the previous question unless already at the first one.
func (s *Session) Retreat() bool {
	if s.CurrentIndex <= 0 {
		return false
	}
	s.CurrentIndex--
	return true
}

// ToggleReveal flips correctness coloring.
func (s *Session) ToggleReveal() {
	s.ShowAnswers = !s.ShowAnswers
}

// Answered returns how many session questions have a recorded answer.
func (s *Session) Answered() int {
	count := 0
	for _, q := range s.Questions {
		if _, ok := s.SelectedAnswers[q.ID]; ok {
			count++
		}
	}
	return count
}

// Score counts session questions answered correctly.
func Score(s Session) int {
	score := 0
	for _, q := range s.Questions {
		if answer, ok := s.SelectedAnswers[q.ID]; ok && answer == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// Attempt summarizes the session for the history table.
func (s *Session) Attempt(endedAt time.Time) model.Attempt {
	return model.Attempt{
		ID:        s.ID,
		Bank:      s.Bank,
		LimitID:   s.LimitID,
		Total:     s.Total(),
		Answered:  s.Answered(),
		Correct:   Score(*s),
		StartedAt: s.StartedAt,
		EndedAt:   endedAt,
	}
}
