package id

import (
	"github.com/google/uuid"
)

// importNamespace scopes reference-derived IDs so re-importing the same
// statement row yields the same expense ID.
var importNamespace = uuid.MustParse("6f1d8c7e-3b0a-4c52-9a8e-2d4f5b7c9e01")

// New returns a new random expense ID.
func New() string {
	return uuid.NewString()
}

// FromReference returns a stable expense ID derived from an external
// reference such as a bank statement row.
func FromReference(ref string) string {
	return uuid.NewSHA1(importNamespace, []byte(ref)).String()
}

// Valid reports whether s is a well-formed expense ID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Short returns the first block of an ID for display.
// "0b5f3a3e-..." -> "0b5f3a3e"
func Short(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
