package util

import "github.com/google/uuid"

// NewID returns a new UUID v4 string used for request correlation.
func NewID() string { return uuid.NewString() }
