// Package hazard contains the analytic core of the hazard MCP server:
// the severity lookup tables, the repair plan cost model, and the
// weather-adjusted worsening projection.
//
// All lookup tables are immutable process-wide configuration constructed at
// init time. Nothing in this package writes shared state, so every function
// is safe for concurrent use without coordination.
//
// # Severity Scale
//
// Hazard severity is an integer in [1,5]: 1 is cosmetic surface wear, 5 is a
// structural defect requiring urgent intervention. Severity values outside
// this range are treated as corrupt upstream data by the plan estimator and
// clamped to 5 by the projector.
package hazard
