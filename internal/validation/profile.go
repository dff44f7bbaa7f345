// Package validation holds field-level input rules shared by services.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/gosh00/FitnessApp/internal/models"
)

const (
	maxDisplayNameLen = 50
	maxBioLen         = 500
	minAge, maxAge    = 10, 120
	minWeightKg       = 20.0
	maxWeightKg       = 500.0
	minHeightCm       = 50.0
	maxHeightCm       = 272.0
)

// ValidateEmail checks that s is a single bare address.
func ValidateEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidateGoal checks goal against the supported profile goals.
func ValidateGoal(goal string) error {
	for _, g := range models.Goals {
		if goal == g {
			return nil
		}
	}
	return fmt.Errorf("goal must be one of: %s", strings.Join(models.Goals, ", "))
}

// ValidateProfilePatch checks every field present in p.
func ValidateProfilePatch(p models.ProfilePatch) error {
	if p.DisplayName != nil {
		name := strings.TrimSpace(*p.DisplayName)
		if name == "" {
			return fmt.Errorf("display_name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxDisplayNameLen {
			return fmt.Errorf("display_name must be at most %d characters", maxDisplayNameLen)
		}
	}
	if p.Bio != nil && utf8.RuneCountInString(*p.Bio) > maxBioLen {
		return fmt.Errorf("bio must be at most %d characters", maxBioLen)
	}
	if p.Age != nil && (*p.Age < minAge || *p.Age > maxAge) {
		return fmt.Errorf("age must be between %d and %d", minAge, maxAge)
	}
	if p.Weight != nil && (*p.Weight < minWeightKg || *p.Weight > maxWeightKg) {
		return fmt.Errorf("weight must be between %.0f and %.0f", minWeightKg, maxWeightKg)
	}
	if p.Height != nil && (*p.Height < minHeightCm || *p.Height > maxHeightCm) {
		return fmt.Errorf("height must be between %.0f and %.0f", minHeightCm, maxHeightCm)
	}
	if p.Goal != nil {
		if err := ValidateGoal(*p.Goal); err != nil {
			return err
		}
	}
	return nil
}
