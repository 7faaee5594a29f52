package service

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrRoomCodeExhausted = errors.New("could not allocate a unique room code")
)
