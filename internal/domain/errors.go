package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotAwaitingApproval  = errors.New("job is not awaiting approval")
	ErrHeroImmutable        = errors.New("hero image cannot be regenerated")
	ErrUnknownVariation     = errors.New("unknown variation name")
	ErrProviderFailure      = errors.New("provider failure")
	ErrHeroGenerationFailed = errors.New("hero generation failed")
	ErrRegenCapExceeded     = errors.New("hero regeneration cap exceeded")
	ErrJobTerminal          = errors.New("job is in a terminal state")
)
