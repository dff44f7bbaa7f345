// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal values accepted on a profile.
const (
	GoalMaintain   = "Maintain Weight"
	GoalWeightLoss = "Weight loss"
	GoalGain       = "Gain Weight"
)

// Goals lists every valid profile goal.
var Goals = []string{GoalMaintain, GoalWeightLoss, GoalGain}

// User is an application account, one-to-one with an identity-provider subject.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID      *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"auth_id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string     `json:"display_name"`
	Bio         string     `gorm:"type:text" json:"bio"`
	Age         *int       `json:"age"`
	Weight      *float64   `json:"weight"`
	Height      *float64   `json:"height"`
	Goal        string     `gorm:"not null;default:'Maintain Weight'" json:"goal"`
	AvatarURL   string     `json:"avatar_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayNameFromEmail returns the local part of an email address.
func DisplayNameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// ProfilePatch carries a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	DisplayName *string  `json:"display_name"`
	Bio         *string  `json:"bio"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Goal        *string  `json:"goal"`
}

// Updates returns the column map for the non-nil fields.
func (p ProfilePatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*p.DisplayName)
	}
	if p.Bio != nil {
		updates["bio"] = *p.Bio
	}
	if p.Age != nil {
		updates["age"] = *p.Age
	}
	if p.Weight != nil {
		updates["weight"] = *p.Weight
	}
	if p.Height != nil {
		updates["height"] = *p.Height
	}
	if p.Goal != nil {
		updates["goal"] = *p.Goal
	}
	return updates
}
