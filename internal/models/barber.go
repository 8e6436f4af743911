package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Bio         string `gorm:"size:500" json:"bio"`
	AvatarURL   string `gorm:"size:255" json:"avatar_url"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
