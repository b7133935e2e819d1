// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiquiz/internal/bank"
	"github.com/verte-zerg/tuiquiz/internal/model"
	"github.com/verte-zerg/tuiquiz/internal/quiz"
)

// AttemptRecorder stores finished attempts.
type AttemptRecorder interface {
	InsertAttempt(ctx context.Context, a model.Attempt) error
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	session   quiz.Session
	questions []model.Question
	bankName  string
	maxID     int

	bridge   *quiz.Bridge
	history  AttemptRecorder
	shuffler *quiz.Shuffler
	logger   *zap.Logger

	width  int
	height int

	cursor int

	filterMode  bool
	filterInput textinput.Model
	filterError string

	keys keyMap
	help help.Model
}

// NewModel constructs a quiz TUI model around an already restored session
// and writes it back so the stored copy reflects any repairs.
func NewModel(session quiz.Session, questions []model.Question, bankName string, bridge *quiz.Bridge, history AttemptRecorder, shuffler *quiz.Shuffler, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		session:   session,
		questions: questions,
		bankName:  bankName,
		maxID:     bank.MaxID(questions),
		bridge:    bridge,
		history:   history,
		shuffler:  shuffler,
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Max question id: "
	m.filterInput.Placeholder = strconv.Itoa(m.maxID)
	m.filterInput.CharLimit = 9
	m.filterInput.Cursor.SetMode(cursor.CursorBlink)
	m.syncCursor()
	m.persist()
	return m
}

// Session returns the current session. Its maps are shared with the model.
func (m *Model) Session() quiz.Session {
	return m.session
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		return m.updateQuiz(msg)
	default:
		if m.filterMode {
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if n, ok := optionNumber(msg); ok {
		m.answer(n - 1)
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Choose):
		m.answer(m.cursor)
	case key.Matches(msg, m.keys.Prev):
		if m.session.Retreat() {
			m.syncCursor()
			m.persist()
		}
	case key.Matches(msg, m.keys.Next):
		if m.session.Advance() {
			m.syncCursor()
			m.persist()
		}
	case key.Matches(msg, m.keys.Reveal):
		m.session.ToggleReveal()
		m.persist()
	case key.Matches(msg, m.keys.Filter):
		return m.startFilter()
	case key.Matches(msg, m.keys.Reset):
		m.restart(m.session.LimitID)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterInput.SetValue(strconv.Itoa(m.session.LimitID))
	m.filterInput.CursorEnd()
	return m, m.filterInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopFilter()
		return m, nil
	case tea.KeyEnter:
		limit, err := bank.ParseLimitID(m.filterInput.Value(), m.maxID)
		if err != nil {
			m.filterError = "enter an id between 1 and " + strconv.Itoa(m.maxID)
			if m.maxID == 0 {
				m.filterError = "the bank has no questions"
			}
			m.logger.Debug("rejected id limit", zap.String("input", m.filterInput.Value()), zap.Error(err))
			return m, nil
		}
		m.stopFilter()
		if limit != m.session.LimitID {
			m.restart(limit)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) stopFilter() {
	m.filterMode = false
	m.filterError = ""
	m.filterInput.Blur()
}

// answer records the idx-th displayed option of the current question.
func (m *Model) answer(idx int) {
	q, ok := m.session.Current()
	if !ok {
		return
	}
	options := m.session.Options(q)
	if idx < 0 || idx >= len(options) {
		return
	}
	m.cursor = idx
	if m.session.RecordAnswer(options[idx]) {
		m.persist()
	}
}

func (m *Model) moveCursor(delta int) {
	q, ok := m.session.Current()
	if !ok {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.session.Options(q)) {
		return
	}
	m.cursor = next
}

// syncCursor points the option cursor at the recorded answer, or the first option.
func (m *Model) syncCursor() {
	m.cursor = 0
	q, ok := m.session.Current()
	if !ok {
		return
	}
	answer, answered := m.session.Selected(q.ID)
	if !answered {
		return
	}
	for i, option := range m.session.Options(q) {
		if option == answer {
			m.cursor = i
			return
		}
	}
}

// restart replaces the session with a fresh one for limitID, archiving the
// old one when it holds answers.
func (m *Model) restart(limitID int) {
	ctx := context.Background()
	if m.session.Answered() > 0 && m.history != nil {
		if err := m.history.InsertAttempt(ctx, m.session.Attempt(time.Now())); err != nil {
			m.logger.Error("failed to record attempt", zap.String("session", m.session.ID), zap.Error(err))
		}
	}
	if err := m.bridge.Clear(ctx); err != nil {
		m.logger.Error("failed to clear saved session", zap.Error(err))
	}
	m.session = quiz.NewSession(m.questions, m.bankName, limitID, m.shuffler)
	m.logger.Info("session started",
		zap.String("session", m.session.ID),
		zap.String("bank", m.bankName),
		zap.Int("limit_id", limitID),
		zap.Int("questions", m.session.Total()),
	)
	m.syncCursor()
	m.persist()
}

func (m *Model) persist() {
	if err := m.bridge.Save(context.Background(), m.session); err != nil {
		m.logger.Error("failed to save session", zap.String("session", m.session.ID), zap.Error(err))
	}
}

func optionNumber(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}
