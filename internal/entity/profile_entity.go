package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds a user's free-text interests used for room recommendations.
type Profile struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Interests string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) GetInterests() string {
	return p.Interests
}
