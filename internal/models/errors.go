package models

import "errors"

// Custom errors
var (
	ErrInsufficientData = errors.New("no qualifying game observations")
	ErrInvalidLambda    = errors.New("computed lambda must be positive")
	ErrMalformedOdds    = errors.New("american odds must be a non-zero integer")
	ErrInvalidCategory  = errors.New("unrecognized stat category")
)
