package inventory

import "errors"

var (
	ErrNameRequired      = errors.New("item name is required")
	ErrInvalidPrice      = errors.New("price must be a non-negative number")
	ErrItemNotFound      = errors.New("item not found")
	ErrConflictPending   = errors.New("a price conflict is already awaiting a decision")
	ErrNoPendingConflict = errors.New("no price conflict is pending")
)
