package bank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLimit is returned for filter input that cannot be committed.
var ErrInvalidLimit = errors.New("invalid question id limit")

// ParseLimitID parses a filter draft. Valid thresholds lie in [1, maxID].
func ParseLimitID(input string, maxID int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidLimit, input)
	}
	if err := CheckLimitID(value, maxID); err != nil {
		return 0, err
	}
	return value, nil
}

// CheckLimitID reports whether limitID is a usable threshold for a bank.
func CheckLimitID(limitID, maxID int) error {
	if limitID < 1 || limitID > maxID {
		return fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidLimit, limitID, maxID)
	}
	return nil
}
