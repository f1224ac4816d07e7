package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", model.ErrInvalidAmount, s)
	}
	return d, nil
}

// parseDay parses a YYYY-MM-DD flag; empty means fallback.
func parseDay(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return model.ParseDate(s)
}

// parsePeriod parses a YYYY-MM flag; empty means the month containing today.
func parsePeriod(s string, today time.Time) (model.Period, error) {
	if s == "" {
		return model.PeriodOf(today), nil
	}
	return model.ParsePeriod(s)
}

// parseRange parses --from/--to. Missing bounds default to the current month.
func parseRange(from, to string, today time.Time) (time.Time, time.Time, error) {
	p := model.PeriodOf(today)
	start, err := parseDay(from, p.Start())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDay(to, p.End())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
