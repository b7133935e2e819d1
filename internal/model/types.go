// Package model defines shared data structures.
package model

import "time"

// Question is a single multiple-choice entry of a bank.
type Question struct {
	ID            int      `json:"id" yaml:"id"`
	Question      string   `json:"question" yaml:"question"`
	Variants      []string `json:"variants" yaml:"variants"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
}

// Config defines quiz settings.
type Config struct {
	Bank        string
	BankPath    string
	LimitID     int
	PinnedLimit bool
	LogLevel    string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Bank   string
	Last   int
	Window int
}

// Attempt captures a finished quiz session.
type Attempt struct {
	ID        string
	Bank      string
	LimitID   int
	Total     int
	Answered  int
	Correct   int
	StartedAt time.Time
	EndedAt   time.Time
}

// AttemptAggregate summarizes stored attempts for reporting.
type AttemptAggregate struct {
	Attempts int
	Total    int
	Answered int
	Correct  int
}
