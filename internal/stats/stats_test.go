package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

func TestAttemptMetrics(t *testing.T) {
	accuracy, completion := AttemptMetrics(3, 4, 8)
	if math.Abs(accuracy-0.75) > 1e-9 || math.Abs(completion-0.5) > 1e-9 {
		t.Fatalf("unexpected metrics: %v %v", accuracy, completion)
	}
	accuracy, completion = AttemptMetrics(0, 0, 0)
	if accuracy != 0 || completion != 0 {
		t.Fatalf("expected zero metrics, got %v %v", accuracy, completion)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if got := MovingAverage([]float64{1, 2}, 1); got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected copy for window 1, got %v", got)
	}
}

func TestSparklineBounds(t *testing.T) {
	got := Sparkline([]float64{-10, 0, 100, 200})
	if got != "  @@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.AttemptAggregate{}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No attempts found.") {
		t.Fatalf("expected empty summary, got %q", buf.String())
	}

	buf.Reset()
	agg := model.AttemptAggregate{Attempts: 2, Total: 20, Answered: 10, Correct: 5}
	attempts := []model.Attempt{
		{Total: 10, Answered: 4, Correct: 2},
		{Total: 10, Answered: 6, Correct: 3},
	}
	if err := RenderSummary(&buf, agg, attempts); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Attempts: 2", "Answered: 10 of 20 (50.0%)", "Correct: 5 (50.0% of answered)", "Best score: 30.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestRenderTrendLimitsWidth(t *testing.T) {
	attempts := make([]model.Attempt, 10)
	for i := range attempts {
		attempts[i] = model.Attempt{Total: 4, Answered: 4, Correct: 4}
	}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, attempts, 3, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 2 || lines[1] != "@@@@@" {
		t.Fatalf("unexpected trend output %q", buf.String())
	}
}

func TestRenderHistory(t *testing.T) {
	attempts := []model.Attempt{{
		Bank:     "physics",
		LimitID:  7,
		Total:    7,
		Answered: 4,
		Correct:  3,
		EndedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
	}}
	rows := HistoryRows(attempts)
	if len(rows) != 1 || rows[0][3] != "3 / 7" || rows[0][5] != "75.0%" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, attempts); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "History") || !strings.Contains(out, "physics") || !strings.Contains(out, "2024-03-01 10:00") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}
