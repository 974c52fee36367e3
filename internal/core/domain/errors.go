package domain

import "errors"

// Ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrListingNotFound = errors.New("listing not found")
)
