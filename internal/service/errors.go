package service

import "errors"

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNameRequired    = errors.New("player name is required")
	ErrInvalidNumber   = errors.New("jersey number must start with a number")
	ErrInvalidPosition = errors.New("unknown position")
	ErrInvalidCSV      = errors.New("invalid csv")
	ErrInvalidTarget   = errors.New("invalid target")
)
