package model

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Interests string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Profile) TableName() string {
	return "profiles"
}
