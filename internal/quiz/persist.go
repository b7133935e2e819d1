package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/verte-zerg/tuiquiz/internal/bank"
	"github.com/verte-zerg/tuiquiz/internal/model"
)

// StateKey is the fixed key the session is stored under.
const StateKey = "quizState"

var (
	// ErrNoSession means nothing is stored under the state key.
	ErrNoSession = errors.New("no saved session")
	// ErrMalformedSession means the stored payload could not be used.
	ErrMalformedSession = errors.New("malformed saved session")
	// ErrBankMismatch means the stored session belongs to another bank.
	ErrBankMismatch = errors.New("saved session belongs to another bank")
)

// KV is the key-value storage the bridge writes to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Bridge mirrors a Session to a KV store.
type Bridge struct {
	kv  KV
	key string
}

// NewBridge returns a bridge using StateKey.
func NewBridge(kv KV) *Bridge {
	return &Bridge{kv: kv, key: StateKey}
}

// Save writes the full session.
func (b *Bridge) Save(ctx context.Context, s Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return b.kv.Put(ctx, b.key, string(data))
}

// Load reads the stored session. defaultLimitID replaces a missing filter.
func (b *Bridge) Load(ctx context.Context, defaultLimitID int) (Session, error) {
	value, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read saved session: %w", err)
	}
	if !ok {
		return Session{}, ErrNoSession
	}
	return Decode([]byte(value), defaultLimitID)
}

// Clear removes the stored session.
func (b *Bridge) Clear(ctx context.Context) error {
	return b.kv.Delete(ctx, b.key)
}

// Restore returns the stored session for bankName or, failing that, a fresh one
// built with defaultLimitID. restored reports which; err explains a fallback
// other than a missing session.
func (b *Bridge) Restore(ctx context.Context, questions []model.Question, bankName string, defaultLimitID int, sh *Shuffler) (s Session, restored bool, err error) {
	s, err = b.Load(ctx, defaultLimitID)
	if err == nil && s.Bank != "" && s.Bank != bankName {
		err = fmt.Errorf("%w: %q", ErrBankMismatch, s.Bank)
	}
	if err != nil {
		fresh := NewSession(questions, bankName, defaultLimitID, sh)
		if errors.Is(err, ErrNoSession) {
			return fresh, false, nil
		}
		return fresh, false, err
	}
	s.Bank = bankName
	return s, true, nil
}

// Encode serializes a session to JSON.
func Encode(s Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// Decode parses a stored session. Fields that are missing or of the wrong type
// fall back to defaults; a payload without valid questions is rejected. An empty
// question list is kept when the session carries its own id limit.
func Decode(data []byte, defaultLimitID int) (Session, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	var s Session
	decodeField(raw, "id", &s.ID)
	decodeField(raw, "bank", &s.Bank)
	decodeField(raw, "startedAt", &s.StartedAt)
	decodeField(raw, "currentIndex", &s.CurrentIndex)
	decodeField(raw, "selectedAnswers", &s.SelectedAnswers)
	decodeField(raw, "limitId", &s.LimitID)
	decodeField(raw, "showAnswers", &s.ShowAnswers)
	decodeField(raw, "shuffledVariantsMap", &s.OptionOrder)
	if !decodeField(raw, "shuffledQuestions", &s.Questions) || s.Questions == nil {
		return Session{}, fmt.Errorf("%w: questions missing or unreadable", ErrMalformedSession)
	}
	if len(s.Questions) > 0 || s.LimitID <= 0 {
		if err := bank.Validate(s.Questions); err != nil {
			return Session{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
		}
	}
	repair(&s, defaultLimitID)
	return s, nil
}

// decodeField sets *target only when the whole field decodes.
func decodeField[T any](raw map[string]json.RawMessage, name string, target *T) bool {
	value, ok := raw[name]
	if !ok {
		return false
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return false
	}
	*target = v
	return true
}

// repair clamps the index, drops stray answers and resets bad option orders after decoding.
func repair(s *Session, defaultLimitID int) {
	ids := make(map[int]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		ids[q.ID] = struct{}{}
	}

	order := make(map[int][]string, len(s.Questions))
	for _, q := range s.Questions {
		if isPermutation(s.OptionOrder[q.ID], q.Variants) {
			order[q.ID] = s.OptionOrder[q.ID]
			continue
		}
		order[q.ID] = append([]string(nil), q.Variants...)
	}
	s.OptionOrder = order

	answers := make(map[int]string, len(s.SelectedAnswers))
	for id, answer := range s.SelectedAnswers {
		if _, ok := ids[id]; ok {
			answers[id] = answer
		}
	}
	s.SelectedAnswers = answers

	if s.LimitID <= 0 {
		s.LimitID = defaultLimitID
	}
	if s.CurrentIndex > len(s.Questions)-1 {
		s.CurrentIndex = len(s.Questions) - 1
	}
	if s.CurrentIndex < 0 {
		s.CurrentIndex = 0
	}
}

// isPermutation reports whether a and b hold the same multiset of strings.
func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(b))
	for _, v := range b {
		counts[v]++
	}
	for _, v := range a {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
