package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	numberCellStyle = cellStyle.Align(lipgloss.Right)
)

// HistoryRows formats attempts as table rows, newest last.
func HistoryRows(attempts []model.Attempt) [][]string {
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		accuracy, _ := AttemptMetrics(a.Correct, a.Answered, a.Total)
		rows = append(rows, []string{
			a.EndedAt.Local().Format("2006-01-02 15:04"),
			a.Bank,
			strconv.Itoa(a.LimitID),
			fmt.Sprintf("%d / %d", a.Correct, a.Total),
			fmt.Sprintf("%d", a.Answered),
			fmt.Sprintf("%.1f%%", accuracy*100),
		})
	}
	return rows
}

// RenderHistory prints the attempts table.
func RenderHistory(w io.Writer, attempts []model.Attempt) error {
	if len(attempts) == 0 {
		return nil
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Finished", "Bank", "Max id", "Score", "Answered", "Accuracy").
		Rows(HistoryRows(attempts)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if col >= 2 {
				return numberCellStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	return nil
}
