/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import "errors"

var (
	// ErrResourceUnavailable is returned when the word resource could not be fetched.
	ErrResourceUnavailable = errors.New("word resource unavailable")

	// ErrNoPools is returned when a board has no pool to hold its tiles.
	ErrNoPools = errors.New("no word pools configured")
)
