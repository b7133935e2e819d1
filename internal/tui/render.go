package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiquiz/internal/model"
	"github.com/verte-zerg/tuiquiz/internal/quiz"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#4A4A4A"))
	selectedCorrectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Background(lipgloss.Color("#2E7D32"))
	selectedIncorrectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Background(lipgloss.Color("#C62828"))
	missedCorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC67E"))
	cursorMarkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	navStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	navDisabledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

const cursorMark = "›"

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := m.contentWidth()
	var sections []string
	if q, ok := m.session.Current(); ok {
		sections = append(sections, m.renderQuestion(q, contentWidth))
	} else {
		sections = append(sections, neutralStyle.Render("No questions match the current id limit."))
	}
	sections = append(sections, "", m.renderStatus())
	if m.filterMode {
		sections = append(sections, m.filterInput.View())
		if m.filterError != "" {
			sections = append(sections, errorStyle.Render(m.filterError))
		}
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(sections, "\n"))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 72
	}
	width := int(float64(m.width) * 0.70)
	if width < 20 {
		width = m.width
	}
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) renderQuestion(q model.Question, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Question %d of %d", m.session.CurrentIndex+1, m.session.Total())))
	b.WriteString("\n\n")
	for _, line := range wrapText(q.Question, width) {
		b.WriteString(questionStyle.Render(line))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	for i, option := range m.session.Options(q) {
		state := quiz.Classify(m.session, q, option)
		b.WriteString(renderOption(i, option, state, i == m.cursor, width))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderOption(idx int, option string, state quiz.OptionState, focused bool, width int) string {
	mark := " "
	if focused {
		mark = cursorMarkStyle.Render(cursorMark)
	}
	prefix := fmt.Sprintf("%d. ", idx+1)
	indent := strings.Repeat(" ", runewidth.StringWidth(cursorMark)+1+runewidth.StringWidth(prefix))
	style := optionStyle(state)
	lines := wrapText(option, width-len(indent))
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			out = append(out, mark+" "+style.Render(prefix+line))
			continue
		}
		out = append(out, indent+style.Render(line))
	}
	return strings.Join(out, "\n")
}

func optionStyle(state quiz.OptionState) lipgloss.Style {
	switch state {
	case quiz.OptionSelected:
		return selectedStyle
	case quiz.OptionSelectedCorrect:
		return selectedCorrectStyle
	case quiz.OptionSelectedIncorrect:
		return selectedIncorrectStyle
	case quiz.OptionMissedCorrect:
		return missedCorrectStyle
	default:
		return neutralStyle
	}
}

func (m *Model) renderStatus() string {
	total := m.session.Total()
	prev := navStyle.Render("‹ prev")
	if m.session.CurrentIndex <= 0 {
		prev = navDisabledStyle.Render("‹ prev")
	}
	next := navStyle.Render("next ›")
	if m.session.CurrentIndex >= total-1 {
		next = navDisabledStyle.Render("next ›")
	}
	segments := []string{
		fmt.Sprintf("Score %d / %d", quiz.Score(m.session), total),
		fmt.Sprintf("Answered %d", m.session.Answered()),
		fmt.Sprintf("Ids ≤ %d", m.session.LimitID),
	}
	if m.session.ShowAnswers {
		segments = append(segments, "Answers shown")
	}
	return prev + "  " + next + "  " + footerStyle.Render(strings.Join(segments, " · "))
}
