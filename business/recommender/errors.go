package recommender

import "errors"

var (
	// ErrUserNotFound: the target user id does not exist. Fatal to the
	// request.
	ErrUserNotFound = errors.New("user not found")

	// ErrFutureInteraction: an interaction is timestamped in the future.
	// This indicates corrupt input and is rejected, never clamped.
	ErrFutureInteraction = errors.New("interaction timestamp is in the future")

	// ErrUnknownInteractionKind: an interaction kind outside the weighting
	// table.
	ErrUnknownInteractionKind = errors.New("unknown interaction kind")
)
