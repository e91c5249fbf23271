package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User holds the account row plus the self-reported profile fields that the
// baseline classifier reads (target country, exam list, goal text).
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email string    `gorm:"column:email;not null;uniqueIndex" json:"email"`

	FirstName       string `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName        string `gorm:"column:last_name" json:"last_name,omitempty"`
	PreferredLocale string `gorm:"column:preferred_locale" json:"preferred_locale,omitempty"`

	TargetCountry string         `gorm:"column:target_country" json:"target_country,omitempty"`
	Exams         datatypes.JSON `gorm:"column:exams;type:jsonb" json:"exams,omitempty"`
	Goal          string         `gorm:"column:goal;type:text" json:"goal,omitempty"`
	SpecificGoal  string         `gorm:"column:specific_goal;type:text" json:"specific_goal,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
