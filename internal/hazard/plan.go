package hazard

import "errors"

// workdayHours models one standard workday of combined crew effort. The
// estimate is single-day; multi-day scheduling is out of scope.
const workdayHours = 8

// ErrInvalidSeverity is returned when a hazard's severity has no tier in the
// table. Severities are [1,5] by invariant, so hitting this indicates
// corrupt upstream data rather than bad input.
var ErrInvalidSeverity = errors.New("invalid severity level")

// Plan is the derived, non-persisted repair plan for one hazard.
type Plan struct {
	Personnel     []string `json:"personnel"`
	Equipment     []string `json:"equipment"`
	Materials     []string `json:"materials"`
	EstimatedCost float64  `json:"estimated_cost"`
}

// PlanFor resolves the severity tier and prices one workday of its crew:
// estimated_cost = sum of the hourly rates of the tier's professions, times
// eight hours. Each profession is counted once; list order documents
// staffing and has no cost effect.
func PlanFor(severity int) (Plan, error) {
	tier, ok := TierFor(severity)
	if !ok {
		return Plan{}, ErrInvalidSeverity
	}

	var hourly float64
	for _, p := range tier.Professions {
		hourly += RateFor(p)
	}

	return Plan{
		Personnel:     tier.Professions,
		Equipment:     tier.Equipment,
		Materials:     tier.Materials,
		EstimatedCost: hourly * workdayHours,
	}, nil
}
