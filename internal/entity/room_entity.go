package entity

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Id        uuid.UUID
	Name      string
	Language  string
	CreatorId *uuid.UUID
	Creator   *User
	CreatedAt time.Time
}
