package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Record prefixes.
const (
	ExpensePrefix = "exp"
	IncomePrefix  = "inc"
	GoalPrefix    = "goal"
)

// Format returns an ID like "exp-000042".
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// Parse splits "exp-000042" into its prefix and sequence number. Only the
// canonical form produced by Format is accepted.
func Parse(id string) (prefix string, seq int, err error) {
	prefix, digits, ok := strings.Cut(id, "-")
	if !ok || prefix == "" || digits == "" {
		return "", 0, fmt.Errorf("invalid record ID format: %q", id)
	}

	seq, err = strconv.Atoi(digits)
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in record ID %q: %w", id, err)
	}
	if seq <= 0 {
		return "", 0, fmt.Errorf("invalid sequence in record ID %q: must be positive", id)
	}
	if Format(prefix, seq) != id {
		return "", 0, fmt.Errorf("invalid record ID %q: want %q", id, Format(prefix, seq))
	}
	return prefix, seq, nil
}

// Sequence hands out increasing IDs for one prefix.
type Sequence struct {
	prefix string
	last   int
}

// NewSequence returns a Sequence whose first ID has sequence 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns a fresh ID.
func (s *Sequence) Next() string {
	s.last++
	return Format(s.prefix, s.last)
}

// Observe records an existing ID so Next never reissues it. The ID must carry
// this sequence's prefix.
func (s *Sequence) Observe(id string) (int, error) {
	prefix, seq, err := Parse(id)
	if err != nil {
		return 0, err
	}
	if prefix != s.prefix {
		return 0, fmt.Errorf("record ID %q: expected prefix %q", id, s.prefix)
	}
	if seq > s.last {
		s.last = seq
	}
	return seq, nil
}
