package contract

import "errors"

// ErrNoRowsAffected is returned by writes that target a row which no longer exists.
var ErrNoRowsAffected = errors.New("no rows affected")

// ErrParentMissing is returned when a row references a parent that does not
// exist, e.g. a message for a chat deleted concurrently.
var ErrParentMissing = errors.New("referenced parent row does not exist")
