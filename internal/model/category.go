package model

import (
	"fmt"
	"strings"
)

// Type classifies a category into one of the three allocation buckets.
type Type string

const (
	TypeNeeds   Type = "needs"
	TypeWants   Type = "wants"
	TypeSavings Type = "savings"
)

// Types returns every Type in ranking order.
func Types() []Type {
	return []Type{TypeNeeds, TypeWants, TypeSavings}
}

// Rank returns the enumeration position of t, or -1 for an unknown type.
func (t Type) Rank() int {
	switch t {
	case TypeNeeds:
		return 0
	case TypeWants:
		return 1
	case TypeSavings:
		return 2
	default:
		return -1
	}
}

// Valid reports whether t is one of the three known types.
func (t Type) Valid() bool { return t.Rank() >= 0 }

// Label returns the display form, e.g. "Wants".
func (t Type) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseType parses a type name case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, s)
	}
	return t, nil
}

// Category is a spending category. Type is fixed at creation.
type Category struct {
	ID      string
	Name    string
	Type    Type
	Color   string // "#rrggbb", display only
	Icon    string // display only
	Builtin bool
}
