package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ExcludeUser drops rows owned by UserID.
type ExcludeUser struct {
	UserID uuid.UUID
}

func (s ExcludeUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id <> ?", s.UserID)
}
