package quiz

import "github.com/verte-zerg/tuiquiz/internal/model"

// OptionState is the display state of one answer option.
type OptionState int

const (
	OptionNeutral OptionState = iota
	OptionSelected
	OptionSelectedCorrect
	OptionSelectedIncorrect
	OptionMissedCorrect
)

// Classify returns how variant of q should be drawn. Without reveal only the
// selection is distinguished.
func Classify(s Session, q model.Question, variant string) OptionState {
	answer, answered := s.SelectedAnswers[q.ID]
	selected := answered && answer == variant
	correct := variant == q.CorrectAnswer
	if !s.ShowAnswers {
		if selected {
			return OptionSelected
		}
		return OptionNeutral
	}
	switch {
	case selected && correct:
		return OptionSelectedCorrect
	case selected:
		return OptionSelectedIncorrect
	case correct:
		return OptionMissedCorrect
	default:
		return OptionNeutral
	}
}
