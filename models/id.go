// File: /models/id.go
package models

import "github.com/google/uuid"

// NewID allocates a record identifier. Every collection draws from this one
// allocator, so ids never collide across collections and an untyped item
// reference can be resolved by probing the collections in order.
func NewID() string {
	return uuid.New().String()
}

// ParseID validates an identifier supplied by a client, before any
// collection is queried with it. The returned form is canonical.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
