// Package store defines the hazard data store contract and its two
// implementations: a Supabase (PostgREST) client for the hosted deployment
// and a SQLite backend for local use. The store is the sole source of truth
// for hazard data; this service only reads it.
package store

import (
	"context"
	"errors"

	"github.com/ironsheep/hazard-mcp/internal/hazard"
)

// ErrNotFound is returned when a hazard id has no row in the store.
var ErrNotFound = errors.New("hazard not found")

// AreaCount is one area's hazard tally.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// TypeCount is one hazard type's tally.
type TypeCount struct {
	Type  string `json:"hazard_type"`
	Count int    `json:"count"`
}

// StatusCount is one status value's tally.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Store is the minimal operation set the analytic handlers need: the four
// named aggregate queries, a row fetch by id, and a most-recent fallback
// fetch. Any client satisfying it is substitutable.
type Store interface {
	// AreaWithMostHazards returns the single area with the highest hazard
	// count.
	AreaWithMostHazards(ctx context.Context) (AreaCount, error)

	// TopSevereInArea returns up to limit hazards in an area, most severe
	// first. The area string is passed to the store unmodified, empty
	// included.
	TopSevereInArea(ctx context.Context, area string, limit int) ([]hazard.Hazard, error)

	// CountsByType returns hazard tallies grouped by type.
	CountsByType(ctx context.Context) ([]TypeCount, error)

	// OpenVsResolved returns hazard tallies grouped by status.
	OpenVsResolved(ctx context.Context) ([]StatusCount, error)

	// HazardByID fetches one hazard, or ErrNotFound.
	HazardByID(ctx context.Context, id int64) (hazard.Hazard, error)

	// MostRecentHazard fetches the most recently created hazard, or
	// ErrNotFound when the store is empty. It stands in for spatial lookup
	// on coordinate-based resolution paths.
	MostRecentHazard(ctx context.Context) (hazard.Hazard, error)
}
