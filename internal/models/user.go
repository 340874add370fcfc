package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a recipe author. Email is the natural key the recipe submission
// flow uses to link (or lazily create) authors.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:30" json:"phone,omitempty"`
	Location     string    `gorm:"size:255" json:"location,omitempty"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	ProfilePic   string    `gorm:"size:512" json:"profilePic,omitempty"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID so the model works on databases without a
// server-side uuid default (the sqlite test databases in particular).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
