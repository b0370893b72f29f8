package hazard

import "strings"

// Severity scale bounds. No hazard exceeds MaxSeverity on any code path.
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// Tier is the resource bundle required to repair a hazard of one severity
// level: the crew professions (ordered for staffing documentation, never
// duplicated within a tier), the equipment, and the materials.
type Tier struct {
	Professions []string
	Equipment   []string
	Materials   []string
}

// severityTiers maps severity 1 (cosmetic) through 5 (structural) to its
// resource bundle.
var severityTiers = map[int]Tier{
	1: {
		Professions: []string{"Road Maintenance Worker"},
		Equipment:   []string{"Hand tamper", "Shovel"},
		Materials:   []string{"Cold patch asphalt"},
	},
	2: {
		Professions: []string{"Road Maintenance Worker", "Traffic Controller"},
		Equipment:   []string{"Hand tamper", "Shovel", "Traffic cones"},
		Materials:   []string{"Cold patch asphalt", "Crack sealant"},
	},
	3: {
		Professions: []string{"Road Maintenance Worker", "Asphalt Technician", "Traffic Controller"},
		Equipment:   []string{"Plate compactor", "Asphalt saw", "Traffic cones"},
		Materials:   []string{"Hot mix asphalt", "Tack coat"},
	},
	4: {
		Professions: []string{"Asphalt Technician", "Heavy Equipment Operator", "Traffic Controller", "Site Supervisor"},
		Equipment:   []string{"Milling machine", "Roller compactor", "Dump truck", "Traffic barriers"},
		Materials:   []string{"Hot mix asphalt", "Tack coat", "Aggregate base"},
	},
	5: {
		Professions: []string{"Civil Engineer", "Asphalt Technician", "Heavy Equipment Operator", "Traffic Controller", "Site Supervisor"},
		Equipment:   []string{"Excavator", "Milling machine", "Roller compactor", "Dump truck", "Road closure kit"},
		Materials:   []string{"Hot mix asphalt", "Reinforced concrete", "Aggregate base", "Geotextile fabric"},
	},
}

// professionRates maps each crew profession to its hourly billing rate in
// currency units per hour.
var professionRates = map[string]float64{
	"Road Maintenance Worker":  35,
	"Traffic Controller":       30,
	"Asphalt Technician":       45,
	"Heavy Equipment Operator": 55,
	"Site Supervisor":          60,
	"Civil Engineer":           80,
}

// weatherMultipliers scales the baseline weekly severity growth per weather
// condition group. Conditions not listed are neutral (1.0).
var weatherMultipliers = map[string]float64{
	"clear":        1.0,
	"clouds":       1.1,
	"mist":         1.2,
	"drizzle":      1.3,
	"rain":         1.5,
	"snow":         1.6,
	"thunderstorm": 1.8,
}

// TierFor returns the resource bundle for a severity level. The second
// return is false when the severity has no tier. Slices are copied so the
// table itself stays immutable.
func TierFor(severity int) (Tier, bool) {
	t, ok := severityTiers[severity]
	if !ok {
		return Tier{}, false
	}
	return Tier{
		Professions: append([]string(nil), t.Professions...),
		Equipment:   append([]string(nil), t.Equipment...),
		Materials:   append([]string(nil), t.Materials...),
	}, true
}

// RateFor returns the hourly rate for a profession, or 0 when unknown.
func RateFor(profession string) float64 {
	return professionRates[profession]
}

// WeatherMultiplier returns the severity growth factor for a weather
// condition label. Matching is case-insensitive; unknown or empty labels
// default to the neutral multiplier 1.0.
func WeatherMultiplier(condition string) float64 {
	if m, ok := weatherMultipliers[strings.ToLower(strings.TrimSpace(condition))]; ok {
		return m
	}
	return 1.0
}
