package models

import (
	"gorm.io/gorm"
)

// User mirrors the account record owned by the external identity service.
// No credentials live here; requests arrive already authenticated.
type User struct {
	gorm.Model
	ProfileImage string `gorm:"default:''"`
	Name         string `gorm:"default:''"`
	Email        string `gorm:"unique;not null"`
	Mobile       string `gorm:"default:''"`
	Role         string `gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	IsDeleted    bool   `gorm:"default:false"`
}
