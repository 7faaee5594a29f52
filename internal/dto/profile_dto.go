package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateInterestsRequest struct {
	Interests string `json:"interests" validate:"max=2000"`
}

type ProfileResponse struct {
	UserId    uuid.UUID `json:"user_id"`
	Interests string    `json:"interests"`
	UpdatedAt time.Time `json:"updated_at"`
}
