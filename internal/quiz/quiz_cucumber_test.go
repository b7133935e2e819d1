//go:build cucumber

package quiz

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

// TestQuizScenarios runs the quiz session feature scenarios.
func TestQuizScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "quiz.feature")
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for quiz scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a bank with question ids ([\d, ]+)$`, state.givenBank)
	ctx.Step(`^a session is started with id limit (\d+)$`, state.startSession)
	ctx.Step(`^the saved state is "([^"]*)"$`, state.givenSavedState)
	ctx.Step(`^the quiz starts with default id limit (\d+)$`, state.whenQuizStarts)
	ctx.Step(`^I select option (\d+) for the current question$`, state.whenSelectOption)
	ctx.Step(`^I advance (\d+) times$`, state.whenAdvance)
	ctx.Step(`^I answer (\d+) questions correctly and (\d+) incorrectly$`, state.whenAnswerMixed)
	ctx.Step(`^the session contains exactly question ids ([\d, ]+)$`, state.thenSessionIDs)
	ctx.Step(`^the current question keeps the first selected option$`, state.thenFirstOptionKept)
	ctx.Step(`^the current index is (\d+)$`, state.thenCurrentIndex)
	ctx.Step(`^a fresh session with (\d+) questions is used$`, state.thenFreshSession)
	ctx.Step(`^the score reads "([^"]*)"$`, state.thenScore)
}

type quizScenarioState struct {
	questions []model.Question
	session   Session
	kv        *memKV
	firstPick string
	restored  bool
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	s.questions = nil
	s.session = Session{}
	s.kv = newMemKV()
	s.firstPick = ""
	s.restored = false
}

func parseIDs(list string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// givenBank seeds a bank with the given ids.
func (s *quizScenarioState) givenBank(list string) error {
	ids, err := parseIDs(list)
	if err != nil {
		return err
	}
	for _, id := range ids {
		s.questions = append(s.questions, model.Question{
			ID:            id,
			Question:      fmt.Sprintf("question %d", id),
			Variants:      []string{fmt.Sprintf("right %d", id), fmt.Sprintf("wrong %d", id)},
			CorrectAnswer: fmt.Sprintf("right %d", id),
		})
	}
	return nil
}

// startSession derives a new session.
func (s *quizScenarioState) startSession(limit int) error {
	s.session = NewSession(s.questions, "test", limit, NewShufflerWithSeed(1))
	return nil
}

// givenSavedState stores a raw payload under the state key.
func (s *quizScenarioState) givenSavedState(payload string) error {
	s.kv.values[StateKey] = payload
	return nil
}

// whenQuizStarts restores the saved session or falls back to a fresh one.
func (s *quizScenarioState) whenQuizStarts(limit int) error {
	session, restored, _ := NewBridge(s.kv).Restore(context.Background(), s.questions, "test", limit, NewShufflerWithSeed(1))
	s.session = session
	s.restored = restored
	return nil
}

// whenSelectOption picks the n-th displayed option.
func (s *quizScenarioState) whenSelectOption(n int) error {
	q, ok := s.session.Current()
	if !ok {
		return fmt.Errorf("no current question")
	}
	options := s.session.Options(q)
	if n < 1 || n > len(options) {
		return fmt.Errorf("option %d out of range", n)
	}
	if s.session.RecordAnswer(options[n-1]) && s.firstPick == "" {
		s.firstPick = options[n-1]
	}
	return nil
}

// whenAdvance calls Advance n times.
func (s *quizScenarioState) whenAdvance(n int) error {
	for i := 0; i < n; i++ {
		s.session.Advance()
	}
	return nil
}

// whenAnswerMixed answers questions in session order.
func (s *quizScenarioState) whenAnswerMixed(correct, incorrect int) error {
	for i := 0; i < correct+incorrect; i++ {
		q, ok := s.session.Current()
		if !ok {
			return fmt.Errorf("ran out of questions")
		}
		answer := q.CorrectAnswer
		if i >= correct {
			answer = "wrong " + strconv.Itoa(q.ID)
		}
		s.session.RecordAnswer(answer)
		s.session.Advance()
	}
	return nil
}

// thenSessionIDs compares session ids ignoring order.
func (s *quizScenarioState) thenSessionIDs(list string) error {
	want, err := parseIDs(list)
	if err != nil {
		return err
	}
	got := make([]int, 0, len(s.session.Questions))
	for _, q := range s.session.Questions {
		got = append(got, q.ID)
	}
	sort.Ints(got)
	sort.Ints(want)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		return fmt.Errorf("expected ids %v, got %v", want, got)
	}
	return nil
}

// thenFirstOptionKept checks write-once answers.
func (s *quizScenarioState) thenFirstOptionKept() error {
	q, _ := s.session.Current()
	got, ok := s.session.Selected(q.ID)
	if !ok || got != s.firstPick {
		return fmt.Errorf("expected %q, got %q", s.firstPick, got)
	}
	return nil
}

// thenCurrentIndex checks navigation position.
func (s *quizScenarioState) thenCurrentIndex(index int) error {
	if s.session.CurrentIndex != index {
		return fmt.Errorf("expected index %d, got %d", index, s.session.CurrentIndex)
	}
	return nil
}

// thenFreshSession checks the fallback session shape.
func (s *quizScenarioState) thenFreshSession(total int) error {
	if s.restored {
		return fmt.Errorf("expected a fresh session")
	}
	if s.session.Total() != total || s.session.CurrentIndex != 0 || len(s.session.SelectedAnswers) != 0 || s.session.ShowAnswers {
		return fmt.Errorf("unexpected fresh session: %+v", s.session)
	}
	return nil
}

// thenScore checks the rendered score text.
func (s *quizScenarioState) thenScore(want string) error {
	got := fmt.Sprintf("%d / %d", Score(s.session), s.session.Total())
	if got != want {
		return fmt.Errorf("expected score %q, got %q", want, got)
	}
	return nil
}
