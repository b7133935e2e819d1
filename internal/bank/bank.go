// Package bank loads and validates question banks.
package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

// DefaultName is the name of the embedded physics bank.
const DefaultName = "physics"

//go:embed physics.json
var physicsJSON []byte

// ErrEmptyBank is returned when a bank contains no questions.
var ErrEmptyBank = errors.New("question bank is empty")

// Default returns the embedded physics bank.
func Default() ([]model.Question, error) {
	questions, err := parseJSON(physicsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded bank: %w", err)
	}
	if err := Validate(questions); err != nil {
		return nil, fmt.Errorf("embedded bank is invalid: %w", err)
	}
	return questions, nil
}

// Load reads a JSON or YAML bank from path and validates it.
func Load(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		questions, err = parseYAML(data)
	default:
		questions, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func parseJSON(data []byte) ([]model.Question, error) {
	var questions []model.Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return questions, nil
}

func parseYAML(data []byte) ([]model.Question, error) {
	var questions []model.Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBank
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return questions, nil
}

// Validate checks ids, texts, and answer options of every question.
func Validate(questions []model.Question) error {
	if len(questions) == 0 {
		return ErrEmptyBank
	}
	seen := make(map[int]struct{}, len(questions))
	for i, q := range questions {
		if q.ID <= 0 {
			return fmt.Errorf("question #%d: id must be > 0", i+1)
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("question %d: duplicate id", q.ID)
		}
		seen[q.ID] = struct{}{}
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: text is empty", q.ID)
		}
		if len(q.Variants) < 2 {
			return fmt.Errorf("question %d: need at least 2 variants, got %d", q.ID, len(q.Variants))
		}
		if !containsString(q.Variants, q.CorrectAnswer) {
			return fmt.Errorf("question %d: correct answer %q is not among variants", q.ID, q.CorrectAnswer)
		}
	}
	return nil
}

// MaxID returns the largest question id, or 0 for an empty bank.
func MaxID(questions []model.Question) int {
	maxID := 0
	for _, q := range questions {
		if q.ID > maxID {
			maxID = q.ID
		}
	}
	return maxID
}

// FilterByMaxID keeps questions whose id does not exceed limitID, preserving order.
func FilterByMaxID(questions []model.Question, limitID int) []model.Question {
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.ID <= limitID {
			out = append(out, q)
		}
	}
	return out
}

// SortByID returns a copy of questions ordered by id.
func SortByID(questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
