package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Granularity is the calendar unit of a window.
type Granularity string

const (
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// ParseGranularity parses "week", "month" or "year".
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Week, Month, Year:
		return g, nil
	default:
		return "", fmt.Errorf("%w: unknown granularity %q", model.ErrInvalidPeriod, s)
	}
}

// Window is one calendar-aligned slice of a windowed series. Start and End
// are the full aligned bounds even when the queried range cuts the window.
type Window struct {
	Label string
	Start time.Time
	End   time.Time
	Total decimal.Decimal
	Count int
}

// Windowed partitions [start, end] into contiguous windows aligned to g and
// totals the expenses dated inside the range. Every window appears, zero or
// not, in ascending order. Weeks start on Monday.
func Windowed(expenses []model.Expense, start, end time.Time, g Granularity) ([]Window, error) {
	if _, err := ParseGranularity(string(g)); err != nil {
		return nil, err
	}
	start, end = model.Day(start), model.Day(end)
	if start.After(end) {
		return []Window{}, nil
	}

	var windows []Window
	index := make(map[int64]int)
	for ws := Align(start, g); !ws.After(end); ws = advance(ws, g) {
		index[ws.Unix()] = len(windows)
		windows = append(windows, Window{
			Label: Label(ws, g),
			Start: ws,
			End:   advance(ws, g).AddDate(0, 0, -1),
			Total: decimal.Zero,
		})
	}

	for _, e := range expenses {
		d := model.Day(e.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		w := &windows[index[Align(d, g).Unix()]]
		w.Total = w.Total.Add(e.Amount)
		w.Count++
	}
	return windows, nil
}

// Align returns the first day of the window of granularity g containing t.
func Align(t time.Time, g Granularity) time.Time {
	d := model.Day(t)
	switch g {
	case Week:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case Year:
		return model.Date(d.Year(), time.January, 1)
	default:
		return model.Date(d.Year(), d.Month(), 1)
	}
}

// Label names the window starting at ws: "2025-W03", "2025-01" or "2025".
func Label(ws time.Time, g Granularity) string {
	switch g {
	case Week:
		y, w := ws.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case Year:
		return fmt.Sprintf("%04d", ws.Year())
	default:
		return ws.Format("2006-01")
	}
}

// Shift moves a window start by n windows of granularity g; n may be
// negative.
func Shift(ws time.Time, g Granularity, n int) time.Time {
	switch g {
	case Week:
		return ws.AddDate(0, 0, 7*n)
	case Year:
		return ws.AddDate(n, 0, 0)
	default:
		return ws.AddDate(0, n, 0)
	}
}

func advance(ws time.Time, g Granularity) time.Time {
	return Shift(ws, g, 1)
}
