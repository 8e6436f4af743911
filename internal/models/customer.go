package models

import "time"

// Customer carries the identity-provider UUID as primary key; the row is
// created on the first booking and reused afterwards.
type Customer struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
