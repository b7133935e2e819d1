package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiquiz/internal/model"
	"github.com/verte-zerg/tuiquiz/internal/quiz"
)

type memKV struct {
	values map[string]string
	puts   int
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.puts++
	m.values[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

type memHistory struct {
	attempts []model.Attempt
}

func (h *memHistory) InsertAttempt(_ context.Context, a model.Attempt) error {
	h.attempts = append(h.attempts, a)
	return nil
}

func testQuestions(n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, model.Question{
			ID:            i,
			Question:      fmt.Sprintf("Question number %d?", i),
			Variants:      []string{fmt.Sprintf("right %d", i), fmt.Sprintf("wrong %d", i), fmt.Sprintf("other %d", i)},
			CorrectAnswer: fmt.Sprintf("right %d", i),
		})
	}
	return questions
}

func newTestModel(t *testing.T, n, limit int) (*Model, *memKV, *memHistory) {
	t.Helper()
	kv := &memKV{values: map[string]string{}}
	history := &memHistory{}
	questions := testQuestions(n)
	sh := quiz.NewShufflerWithSeed(5)
	session := quiz.NewSession(questions, "test", limit, sh)
	m := NewModel(session, questions, "test", quiz.NewBridge(kv), history, sh, nil)
	return m, kv, history
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func savedSession(t *testing.T, kv *memKV) quiz.Session {
	t.Helper()
	raw, ok := kv.values[quiz.StateKey]
	if !ok {
		t.Fatalf("expected saved session")
	}
	s, err := quiz.Decode([]byte(raw), 1)
	if err != nil {
		t.Fatalf("decode saved session: %v", err)
	}
	return s
}

func TestNewModelPersistsSession(t *testing.T) {
	m, kv, _ := newTestModel(t, 3, 3)
	if got := savedSession(t, kv); got.ID != m.Session().ID {
		t.Fatalf("expected saved session %q, got %q", m.Session().ID, got.ID)
	}
}

func TestSelectingTwiceKeepsFirstAnswer(t *testing.T) {
	m, kv, _ := newTestModel(t, 3, 3)
	q, _ := m.session.Current()
	options := m.session.Options(q)

	m.Update(runes("1"))
	m.Update(runes("2"))

	session := m.Session()
	got, ok := session.Selected(q.ID)
	if !ok || got != options[0] {
		t.Fatalf("expected first option %q kept, got %q", options[0], got)
	}
	saved := savedSession(t, kv)
	if saved.SelectedAnswers[q.ID] != options[0] {
		t.Fatalf("expected saved answer %q, got %q", options[0], saved.SelectedAnswers[q.ID])
	}
}

func TestCursorAndEnterSelect(t *testing.T) {
	m, _, _ := newTestModel(t, 2, 2)
	q, _ := m.session.Current()
	options := m.session.Options(q)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	session := m.Session()
	if got, _ := session.Selected(q.ID); got != options[len(options)-1] {
		t.Fatalf("expected last option selected, got %q", got)
	}
}

func TestNavigationPersistsAndStopsAtBounds(t *testing.T) {
	m, kv, _ := newTestModel(t, 3, 3)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Session().CurrentIndex != 0 {
		t.Fatalf("expected index 0, got %d", m.Session().CurrentIndex)
	}
	for i := 0; i < 4; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Session().CurrentIndex != 2 {
		t.Fatalf("expected index 2, got %d", m.Session().CurrentIndex)
	}
	if saved := savedSession(t, kv); saved.CurrentIndex != 2 {
		t.Fatalf("expected saved index 2, got %d", saved.CurrentIndex)
	}
}

func TestRevealToggle(t *testing.T) {
	m, kv, _ := newTestModel(t, 2, 2)
	m.Update(runes("a"))
	if !m.Session().ShowAnswers || !savedSession(t, kv).ShowAnswers {
		t.Fatalf("expected answers shown and saved")
	}
	if !strings.Contains(m.View(), "Answers shown") {
		t.Fatalf("expected reveal marker in view")
	}
	m.Update(runes("a"))
	if m.Session().ShowAnswers {
		t.Fatalf("expected answers hidden again")
	}
}

func TestInvalidFilterKeepsPreviousLimit(t *testing.T) {
	m, _, _ := newTestModel(t, 5, 5)
	before := m.Session().ID

	m.Update(runes("/"))
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.filterInput.SetValue("abc")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session().LimitID != 5 || m.Session().ID != before {
		t.Fatalf("expected session untouched, got limit %d", m.Session().LimitID)
	}
	if m.filterError == "" || !strings.Contains(m.View(), "between 1 and 5") {
		t.Fatalf("expected inline hint")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode {
		t.Fatalf("expected filter mode closed")
	}
	if m.Session().LimitID != 5 {
		t.Fatalf("expected limit 5 kept, got %d", m.Session().LimitID)
	}
}

func TestValidFilterRestartsSession(t *testing.T) {
	m, kv, history := newTestModel(t, 5, 5)
	m.Update(runes("1"))
	before := m.Session().ID

	m.Update(runes("/"))
	m.filterInput.SetValue("2")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	s := m.Session()
	if s.ID == before || s.LimitID != 2 || s.Total() != 2 {
		t.Fatalf("expected new session with 2 questions, got limit=%d total=%d", s.LimitID, s.Total())
	}
	if len(s.SelectedAnswers) != 0 || s.CurrentIndex != 0 {
		t.Fatalf("expected cleared answers and index")
	}
	if len(history.attempts) != 1 || history.attempts[0].ID != before || history.attempts[0].Answered != 1 {
		t.Fatalf("expected previous session archived, got %+v", history.attempts)
	}
	if saved := savedSession(t, kv); saved.ID != s.ID || saved.LimitID != 2 {
		t.Fatalf("expected new session saved, got %q limit %d", saved.ID, saved.LimitID)
	}
}

func TestResetWithoutAnswersSkipsHistory(t *testing.T) {
	m, _, history := newTestModel(t, 3, 3)
	before := m.Session().ID
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(runes("R"))
	if m.Session().ID == before || m.Session().CurrentIndex != 0 {
		t.Fatalf("expected fresh session after reset")
	}
	if len(history.attempts) != 0 {
		t.Fatalf("expected no attempt for unanswered session")
	}
}

func TestViewShowsScore(t *testing.T) {
	m, _, _ := newTestModel(t, 3, 3)
	for i, q := range m.session.Questions {
		answer := q.CorrectAnswer
		if i == 2 {
			answer = "wrong " + fmt.Sprint(q.ID)
		}
		m.session.SelectedAnswers[q.ID] = answer
	}
	view := m.View()
	if !strings.Contains(view, "Score 2 / 3") {
		t.Fatalf("expected score in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Question 1 of 3") {
		t.Fatalf("expected question counter in view")
	}
}

func TestEmptySessionRendersNeutralView(t *testing.T) {
	kv := &memKV{values: map[string]string{}}
	sh := quiz.NewShufflerWithSeed(1)
	session := quiz.NewSession(testQuestions(3), "test", 0, sh)
	m := NewModel(session, testQuestions(3), "test", quiz.NewBridge(kv), nil, sh, nil)

	m.Update(runes("1"))
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "No questions") {
		t.Fatalf("expected neutral empty view")
	}
}

func TestOptionStylesAreDistinct(t *testing.T) {
	states := []quiz.OptionState{
		quiz.OptionNeutral,
		quiz.OptionSelected,
		quiz.OptionSelectedCorrect,
		quiz.OptionSelectedIncorrect,
		quiz.OptionMissedCorrect,
	}
	seen := map[string]quiz.OptionState{}
	for _, state := range states {
		key := fmt.Sprintf("%v|%v|%v", optionStyle(state).GetForeground(), optionStyle(state).GetBackground(), optionStyle(state).GetBold())
		if prev, ok := seen[key]; ok {
			t.Fatalf("states %d and %d share a style", prev, state)
		}
		seen[key] = state
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, 1, 1)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
