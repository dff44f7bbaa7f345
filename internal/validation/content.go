package validation

import (
	"fmt"
	"unicode/utf8"
)

const (
	MaxWorkoutNameLen = 100
	MaxCommentLen     = 2000
	MaxFoodNoteLen    = 280
)

// ValidateLength rejects s when it is longer than max runes.
func ValidateLength(field, s string, max int) error {
	if utf8.RuneCountInString(s) > max {
		return fmt.Errorf("%s must be at most %d characters", field, max)
	}
	return nil
}
