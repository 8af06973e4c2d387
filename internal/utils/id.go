package utils

import "github.com/google/uuid"

// NewID generates a random identifier for a new record. All primary keys
// are client-generated; nothing relies on database identity columns.
func NewID() string {
	return uuid.NewString()
}
