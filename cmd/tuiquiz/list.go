package main

import (
	"fmt"
	"io"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

func writeQuestions(w io.Writer, questions []model.Question, answers bool) error {
	for i, q := range questions {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d. %s\n", q.ID, q.Question); err != nil {
			return err
		}
		for _, variant := range q.Variants {
			marker := " "
			if answers && variant == q.CorrectAnswer {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", marker, variant); err != nil {
				return err
			}
		}
	}
	return nil
}
