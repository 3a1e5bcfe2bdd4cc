package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed                  = errors.New("validation failed")
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentStartRequired           = errors.New("tournament start date is required")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTeamNameRequired                  = errors.New("team name is required")
	ErrGuardianNameRequired              = errors.New("guardian full name is required")
	ErrGuardianEmailInvalid              = errors.New("guardian email is invalid")
	ErrChildNameRequired                 = errors.New("child first and last name are required")
	ErrPaymentConceptRequired            = errors.New("payment concept is required")
	ErrPaymentInvalidAmount              = errors.New("payment amount must be positive")
	ErrCheckInInvalidMethod              = errors.New("check-in method must be manual or facial")
	ErrProductNameRequired               = errors.New("product name is required")
	ErrProductInvalidPrice               = errors.New("product price must be positive")
	ErrOrderInvalidQuantity              = errors.New("order quantity must be positive")

	// Fixture generation
	ErrNotEnoughTeams       = errors.New("at least two teams are required to generate fixtures")
	ErrInvalidFormat        = errors.New("unknown tournament format")
	ErrFixturesAlreadyExist = errors.New("fixtures already generated for this tournament")

	// Match results
	ErrMatchAlreadyFinished = errors.New("match result has already been recorded")
	ErrMatchInvalidScore    = errors.New("match scores must be non-negative")

	// Conflicts
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrGuardianEmailConflict  = errors.New("guardian email address is already in use")
	ErrProductOutOfStock      = errors.New("not enough stock for the requested quantity")

	// Entity lookups
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrGuardianNotFound   = errors.New("guardian not found")
	ErrChildNotFound      = errors.New("child not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrCheckInNotFound    = errors.New("check-in not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")

	// Deletion guards
	ErrTournamentHasMatches = errors.New("tournament has generated matches and cannot be deleted")
	ErrGuardianInUse        = errors.New("guardian has linked children or orders")
)
