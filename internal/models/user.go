package models

import "time"

// User is an account that can log in. The password hash is never serialized
// to JSON.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name         string    `gorm:"size:128" bson:"name" json:"name"`
	Email        string    `gorm:"size:191;uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
