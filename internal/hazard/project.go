package hazard

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Projection parameters.
const (
	// BaseWeeklyRate is the neutral-weather severity growth per week.
	BaseWeeklyRate = 0.1

	// ForecastWeeks is the fixed projection horizon.
	ForecastWeeks = 12
)

// ProjectionPoint is one week of the forecast.
type ProjectionPoint struct {
	Week     int
	Severity float64
}

// Projection is an ordered multi-week severity forecast. It marshals as a
// JSON object with keys week_1..week_N in week order.
type Projection struct {
	Points []ProjectionPoint
}

// MarshalJSON writes the forecast as {"week_1": 3.2, ...}, preserving week
// order rather than the alphabetical order a Go map would produce.
func (p Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pt := range p.Points {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"week_%d":%s`, pt.Week, strconv.FormatFloat(pt.Severity, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Forecast is the full projection result: the inputs that produced it plus
// the week-by-week severities.
type Forecast struct {
	StartSeverity int
	Condition     string
	Multiplier    float64
	WeeklyGrowth  float64
	Weeks         Projection
}

// Project forecasts how a hazard's severity worsens over the fixed horizon
// under a weather condition. Weekly growth is BaseWeeklyRate scaled by the
// condition's multiplier; each week adds the growth to the previous week's
// value, rounded to one decimal and clamped at MaxSeverity. Identical inputs
// always produce identical output.
func Project(severity int, condition string) Forecast {
	mult := WeatherMultiplier(condition)
	growth := round3(BaseWeeklyRate * mult)

	points := make([]ProjectionPoint, 0, ForecastWeeks)
	current := float64(severity)
	for week := 1; week <= ForecastWeeks; week++ {
		current = round1(current + growth)
		if current > MaxSeverity {
			current = MaxSeverity
		}
		points = append(points, ProjectionPoint{Week: week, Severity: current})
	}

	return Forecast{
		StartSeverity: severity,
		Condition:     condition,
		Multiplier:    mult,
		WeeklyGrowth:  growth,
		Weeks:         Projection{Points: points},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
