package services

import "errors"

// Shared service errors mapped to HTTP statuses in handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrPlayersNotDistinct  = errors.New("all four players must be distinct")
	ErrDrawNotAllowed      = errors.New("a match cannot end in a draw")
	ErrScoreInvalid        = errors.New("scores must be non-negative integers")
	ErrPlayerNotOnRoster   = errors.New("player is not on the chat roster")
	ErrPlayerHasMatches    = errors.New("player has recorded matches and cannot be removed")
	ErrSeasonWindowInvalid = errors.New("season end date must not precede start date")
	ErrSchedulePlayerCount = errors.New("schedule requires between 4 and 8 players")
	ErrNothingToExport     = errors.New("no rating data to export")

	// Conflicts
	ErrChatSlugTaken   = errors.New("chat slug is already in use")
	ErrPlayerOnRoster  = errors.New("player is already on the chat roster")
	ErrAdminEmailTaken = errors.New("email is already taken")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found (more context than the generic one)
	ErrChatNotFound   = errors.New("chat not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrSeasonNotFound = errors.New("season not found")
)
