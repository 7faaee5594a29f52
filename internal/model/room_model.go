package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	Language  string     `gorm:"type:varchar(20);not null;default:'python'"`
	CreatorId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`

	Creator *User `gorm:"foreignKey:CreatorId;constraint:OnDelete:CASCADE"`
}

func (Room) TableName() string {
	return "rooms"
}
