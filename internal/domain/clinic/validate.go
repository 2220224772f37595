package clinic

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// maxLen es un límite de largo en runas por campo.
type maxLen struct {
	field string
	value string
	max   int
}

func checkLengths(rules ...maxLen) error {
	var msgs []string
	for _, r := range rules {
		if utf8.RuneCountInString(r.value) > r.max {
			msgs = append(msgs, fmt.Sprintf("%s must be at most %d characters", r.field, r.max))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
