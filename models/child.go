package models

import "time"

type Child struct {
	ID         int       `json:"id" db:"id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	BirthDate  time.Time `json:"birth_date" db:"birth_date"`
	GuardianID int       `json:"guardian_id" db:"guardian_id"`
	TeamID     *int      `json:"team_id,omitempty" db:"team_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`

	Guardian *Guardian `json:"guardian,omitempty" db:"-"`
}
