package game

import "errors"

// Fixed action tuning, mirrored from the original balance sheet.
const (
	StartingCash = int64(10_000)

	MinGambleStake = int64(100)
	GambleWinProb  = 0.45

	StudyEnergyCost     = 20
	SocializeEnergyCost = 15
	GymEnergyCost       = 15
	GymCost             = int64(100)
	WorkHappinessCost   = 5

	DateCost        = int64(500)
	DateSuccessProb = 0.70
	MarryCost       = int64(20_000)
	MarryMinAge     = 18
	ChildCost       = int64(10_000)

	DailyBonusMin = int64(1_000)
	DailyBonusMax = int64(5_999)
)

// Rejected preconditions. Every one maps to a user-facing notification and
// leaves the state untouched.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientBank  = errors.New("insufficient bank balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrLoanLimit         = errors.New("loan exceeds credit limit")
	ErrNotEnoughEnergy   = errors.New("not enough energy")
	ErrNoJob             = errors.New("no job held")
	ErrJobRequirements   = errors.New("job requirements not met")
	ErrAlreadyMarried    = errors.New("already married")
	ErrTooYoung          = errors.New("too young")
	ErrNoSpouse          = errors.New("a spouse is required first")
	ErrBelowMinimum      = errors.New("below minimum amount")
	ErrUnknownCatalogID  = errors.New("unknown catalog id")
	ErrBonusClaimed      = errors.New("daily bonus already claimed")
	ErrUnknownStat       = errors.New("unknown stat")
	ErrNoPendingEvent    = errors.New("no pending event")
	ErrInvalidChoice     = errors.New("invalid event choice")
	ErrNotFound          = errors.New("not found")
)
