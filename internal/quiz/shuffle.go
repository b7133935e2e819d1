// Package quiz holds the quiz session state and its persistence bridge.
package quiz

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

// Shuffler produces uniform random permutations.
type Shuffler struct {
	rnd *rand.Rand
}

// NewShuffler returns a Shuffler seeded with the current time.
func NewShuffler() *Shuffler {
	return NewShufflerWithSeed(time.Now().UnixNano())
}

// NewShufflerWithSeed returns a deterministic Shuffler.
func NewShufflerWithSeed(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Questions returns a shuffled copy of questions.
func (s *Shuffler) Questions(questions []model.Question) []model.Question {
	return shuffleCopy(s.rnd, questions)
}

// Strings returns a shuffled copy of values.
func (s *Shuffler) Strings(values []string) []string {
	return shuffleCopy(s.rnd, values)
}

// shuffleCopy is a Fisher-Yates shuffle over a copy of in.
func shuffleCopy[T any](rnd *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
