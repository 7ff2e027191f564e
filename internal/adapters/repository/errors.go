package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrInvalidCheckin = errors.New("invalid check-in submission")
)
