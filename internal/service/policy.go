package service

import (
	"fmt"
	"strings"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// ParseState accepts exactly the three lifecycle states. Any state may be
// reached from any other.
func ParseState(raw string) (model.State, error) {
	s := model.State(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown state %q", ErrValidation, raw)
	}
	return s, nil
}

// ParseDueDate normalizes raw to YYYY-MM-DD. The second result is false for
// empty or malformed input, which callers store as "no due date".
func ParseDueDate(raw string) (string, bool) {
	d, ok := model.ParseDate(raw)
	if !ok {
		return "", false
	}
	return d.Format(model.DateLayout), true
}

func requireText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text must not be empty", ErrValidation)
	}
	return text, nil
}
