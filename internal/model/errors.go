package model

import "errors"

// Common errors used across the application
var (
	// Party errors
	ErrPartyNotFound = errors.New("party not found")
	ErrNotHost       = errors.New("only the host can perform this action")
	ErrNotInParty    = errors.New("user is not in this party")
	ErrTeamFull      = errors.New("team role is full")

	// State machine errors
	ErrInvalidState    = errors.New("command is not legal in the current state")
	ErrWrongRole       = errors.New("wrong role for this action")
	ErrNotYourTurn     = errors.New("not your team's turn")
	ErrAlreadyRevealed = errors.New("tile is already revealed")
	ErrInvalidTile     = errors.New("tile index out of range")
	ErrInvalidRow      = errors.New("row index out of range")
	ErrAbilityUsed     = errors.New("ability already used this game")

	// Board generation errors
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrInsufficientWords = errors.New("dictionary has too few distinct words")

	// Storage errors
	ErrHostNotFound     = errors.New("host account not found")
	ErrWordPackNotFound = errors.New("word pack not found")
)
