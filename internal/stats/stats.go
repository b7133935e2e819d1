// Package stats contains attempt statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

const sparkChars = " .:-=+*#%@"

// AttemptMetrics computes accuracy over answered questions and completion over
// all questions of an attempt.
func AttemptMetrics(correct, answered, total int) (accuracy, completion float64) {
	if answered > 0 {
		accuracy = float64(correct) / float64(answered)
	}
	if total > 0 {
		completion = float64(answered) / float64(total)
	}
	return accuracy, completion
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline scaled to [0, 100].
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		pos := v / 100
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals across attempts.
func RenderSummary(w io.Writer, agg model.AttemptAggregate, attempts []model.Attempt) error {
	if agg.Attempts == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	accuracy, completion := AttemptMetrics(agg.Correct, agg.Answered, agg.Total)
	best := 0.0
	for _, a := range attempts {
		if a.Total == 0 {
			continue
		}
		if score := float64(a.Correct) / float64(a.Total); score > best {
			best = score
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", agg.Attempts),
		fmt.Sprintf("Answered: %d of %d (%.1f%%)", agg.Answered, agg.Total, completion*100),
		fmt.Sprintf("Correct: %d (%.1f%% of answered)", agg.Correct, accuracy*100),
		fmt.Sprintf("Best score: %.1f%%", best*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints a sparkline of per-attempt accuracy, smoothed over window
// and limited to the last width attempts.
func RenderTrend(w io.Writer, attempts []model.Attempt, window, width int) error {
	if len(attempts) == 0 {
		return nil
	}
	values := make([]float64, len(attempts))
	for i, a := range attempts {
		accuracy, _ := AttemptMetrics(a.Correct, a.Answered, a.Total)
		values[i] = accuracy * 100
	}
	values = MovingAverage(values, window)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if _, err := fmt.Fprintf(w, "Accuracy trend (window %d)\n", window); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", Sparkline(values)); err != nil {
		return err
	}
	return nil
}
