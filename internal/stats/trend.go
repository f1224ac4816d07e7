package stats

import (
	"fmt"
	"math"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/aggregate"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// flatTolerance is the slope magnitude treated as no movement.
const flatTolerance = 1e-9

// Point is one labelled value of an ordered series.
type Point struct {
	Label string
	Value float64
}

// PointsFromWindows turns a windowed series into trend input.
func PointsFromWindows(windows []aggregate.Window) []Point {
	points := make([]Point, len(windows))
	for i, w := range windows {
		points[i] = Point{Label: w.Label, Value: w.Total.InexactFloat64()}
	}
	return points
}

// Trend is an ordinary least-squares line over x = 0..N-1.
//
// It is a straight-line extrapolation of the series and knows nothing about
// seasonality or one-off spikes. Use it for direction ("spending is going
// up"), not as a forecast.
type Trend struct {
	Slope     float64
	Intercept float64
	N         int
}

// ProjectTrend fits a line to points by their position in the series. At
// least two points are required, else ErrInsufficientData.
func ProjectTrend(points []Point) (Trend, error) {
	if len(points) < 2 {
		return Trend{}, fmt.Errorf("%w: need at least 2 points, got %d", model.ErrInsufficientData, len(points))
	}

	n := float64(len(points))
	var sumX, sumY float64
	for i, p := range points {
		sumX += float64(i)
		sumY += p.Value
	}
	meanX, meanY := sumX/n, sumY/n

	var num, den float64
	for i, p := range points {
		dx := float64(i) - meanX
		num += dx * (p.Value - meanY)
		den += dx * dx
	}

	slope := num / den
	return Trend{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
		N:         len(points),
	}, nil
}

// At returns the fitted value at x.
func (t Trend) At(x float64) float64 {
	return t.Intercept + t.Slope*x
}

// Next returns the fitted value one step past the series, floored at zero.
func (t Trend) Next() float64 {
	return math.Max(0, t.At(float64(t.N)))
}

// Direction is "up", "down" or "flat".
func (t Trend) Direction() string {
	switch {
	case t.Slope > flatTolerance:
		return "up"
	case t.Slope < -flatTolerance:
		return "down"
	default:
		return "flat"
	}
}
