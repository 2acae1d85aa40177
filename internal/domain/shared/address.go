package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.:-]{0,63}$`)

// Address is a value object identifying an owner account (a player or the admin).
// Addresses are case-insensitive and stored lower-cased.
type Address struct {
	value string
}

// NewAddress creates a new Address value object
func NewAddress(raw string) (Address, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Address{}, NewValidationError("address", "cannot be empty")
	}
	if !addressPattern.MatchString(v) {
		return Address{}, NewValidationError("address", fmt.Sprintf("invalid address %q", raw))
	}
	return Address{value: v}, nil
}

// MustNewAddress creates a new Address, panicking if invalid
// Use this only when you're certain the address is valid (e.g., from database)
func MustNewAddress(raw string) Address {
	a, err := NewAddress(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// Value returns the normalized address
func (a Address) Value() string {
	return a.value
}

func (a Address) String() string {
	return a.value
}

// Equals checks if two Addresses are equal
func (a Address) Equals(other Address) bool {
	return a.value == other.value
}

// IsZero checks if the Address is the zero value (uninitialized)
func (a Address) IsZero() bool {
	return a.value == ""
}
