package apperror

import "errors"

var (
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrRoomClosed        = errors.New("room is closed")

	ErrWrongPassword = errors.New("incorrect password")
	ErrUserNotFound  = errors.New("user not found")
)
