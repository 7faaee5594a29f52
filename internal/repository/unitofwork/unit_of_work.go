package unitofwork

import (
	"context"

	"codecollab-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProfileRepository() contract.ProfileRepository
	RoomRepository() contract.RoomRepository
}
