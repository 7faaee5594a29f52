package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=python java cpp javascript"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"room_code" validate:"required,alphanum,max=100"`
}

type RoomResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowRoomResponse struct {
	RoomResponse
	Languages []string `json:"languages"`
}

type RecommendedRoomResponse struct {
	Name    string    `json:"name"`
	Creator string    `json:"creator"`
	Id      uuid.UUID `json:"id"`
}
