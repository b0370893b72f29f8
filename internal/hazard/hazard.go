package hazard

import "time"

// Hazard is a single reported road defect. Records are created and mutated
// exclusively by the remote store; this package only reads them.
type Hazard struct {
	ID        int64     `json:"id"`
	Type      string    `json:"hazard_type"`
	Severity  int       `json:"severity"`
	Area      string    `json:"area,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Hazard status values as stored.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// HasLocation reports whether the hazard carries coordinates. Some query
// paths return rows without them.
func (h Hazard) HasLocation() bool {
	return h.Lat != nil && h.Lng != nil
}
