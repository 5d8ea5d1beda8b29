package services

import "errors"

// Business-rule errors shared between services and the HTTP error mapping.
// Schedule generation precondition errors live in the brackets package next
// to the validation itself.
var (
	ErrSetupLocked              = errors.New("team setup is locked once the schedule has been generated")
	ErrScheduleAlreadyGenerated = errors.New("the schedule has already been generated")
	ErrTeamNotFound             = errors.New("team not found")
	ErrGameNotFound             = errors.New("game not found")
	ErrInvalidPool              = errors.New("pool must be A or B")
	ErrScoreOutOfRange          = errors.New("scores must be between 0 and 30")
	ErrKnockoutNotReady         = errors.New("knockout match teams are not determined yet")
	ErrInvalidCredentials       = errors.New("invalid credentials")
)
