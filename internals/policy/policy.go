// internals/policy/policy.go
package policy

import "github.com/google/uuid"

// Shared ownership/eligibility predicates consulted by the book, lending
// and feedback services. Pure functions, no DB access.

// IsOwner reports whether callerID owns the entity.
func IsOwner(ownerID, callerID uuid.UUID) bool {
	return ownerID != uuid.Nil && ownerID == callerID
}

// IsActionable reports whether a book can be borrowed, returned or
// reviewed: never when archived, and only when shared by its owner.
func IsActionable(archived, shareable bool) bool {
	return !archived && shareable
}
