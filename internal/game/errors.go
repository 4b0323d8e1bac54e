package game

import "errors"

var (
	// ErrInvalidStateTransition is returned when an action is illegal for
	// the current hand or game state. The rejected action mutates nothing.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrBetExceedsMaximum is returned when an escrow attempt would push a
	// hand's bet over the table maximum.
	ErrBetExceedsMaximum = errors.New("bet exceeds table maximum")

	// ErrBetBelowMinimum is returned when a wager is set below the table
	// minimum.
	ErrBetBelowMinimum = errors.New("bet below table minimum")

	// ErrInsufficientHoldings is returned when the player cannot cover an
	// escrow attempt. No funds move.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrUnknownHand is returned when an action targets a hand that does
	// not belong to the current round.
	ErrUnknownHand = errors.New("hand does not belong to this round")
)
