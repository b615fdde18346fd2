package roundservice

import "errors"

var (
	// ErrRoundNotFound is returned for unknown round ids.
	ErrRoundNotFound = errors.New("round not found")
	// ErrRoundCompleted is returned when changing a finished round.
	ErrRoundCompleted = errors.New("round is already completed")
	// ErrInvalidSetup wraps every reason a round cannot start.
	ErrInvalidSetup = errors.New("invalid round setup")
	// ErrInvalidScore wraps every reason a score is rejected.
	ErrInvalidScore = errors.New("invalid score")
	// ErrPlayerNotInRound is returned for scores against an unknown player.
	ErrPlayerNotInRound = errors.New("player is not in this round")
	// ErrHoleOutOfRange is returned for holes outside 1..round length.
	ErrHoleOutOfRange = errors.New("hole is outside the round")
)
