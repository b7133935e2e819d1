package tui

import (
	"reflect"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextBreaksOnSpaces(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	got := wrapText("x abcdefghij z", 4)
	want := []string{"x", "abcd", "efgh", "ij z"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	got := wrapText("日本語 テキスト", 6)
	for _, line := range got {
		if w := runewidth.StringWidth(line); w > 6 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	got := wrapText("  spaced   out  ", 0)
	if !reflect.DeepEqual(got, []string{"spaced out"}) {
		t.Fatalf("unexpected result %q", got)
	}
	if got := wrapText("", 10); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("expected single empty line, got %q", got)
	}
}
