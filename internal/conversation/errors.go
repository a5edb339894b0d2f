package conversation

import "errors"

var (
	// ErrAlreadyOpen is returned when a user who already owns a
	// conversation (or holds a pending reservation) tries to open another.
	ErrAlreadyOpen = errors.New("conversation already open for user")

	// ErrNotOwner is returned when the (user, channel) pair does not match
	// the registry's current mapping.
	ErrNotOwner = errors.New("user does not own this conversation channel")

	// ErrUnknownChannel is returned for operations on a channel with no
	// registered conversation.
	ErrUnknownChannel = errors.New("no conversation registered for channel")

	// ErrNoReservation is returned when Bind is called for a user without
	// a pending reservation.
	ErrNoReservation = errors.New("no pending reservation for user")
)
