package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ironsheep/hazard-mcp/internal/hazard"
)

// SQLite implements Store against a local SQLite database. It exists for
// local development and as the substitutable backend behind the same
// operation set the hosted store exposes.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS hazards (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	hazard_type TEXT    NOT NULL,
	severity    INTEGER NOT NULL,
	area        TEXT    NOT NULL DEFAULT '',
	lat         REAL,
	lng         REAL,
	status      TEXT    NOT NULL DEFAULT 'open',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// OpenSQLite opens (creating if needed) a SQLite hazard database at path.
// Use ":memory:" for an ephemeral database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) AreaWithMostHazards(ctx context.Context) (AreaCount, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT area, COUNT(*) AS n FROM hazards GROUP BY area ORDER BY n DESC, area ASC LIMIT 1`)

	var ac AreaCount
	if err := row.Scan(&ac.Area, &ac.Count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AreaCount{}, nil
		}
		return AreaCount{}, fmt.Errorf("area with most hazards: %w", err)
	}
	return ac, nil
}

func (s *SQLite) TopSevereInArea(ctx context.Context, area string, limit int) ([]hazard.Hazard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hazard_type, severity, area, lat, lng, status, created_at
		 FROM hazards WHERE area = ?
		 ORDER BY severity DESC, created_at DESC LIMIT ?`, area, limit)
	if err != nil {
		return nil, fmt.Errorf("top severe in area: %w", err)
	}
	defer rows.Close()
	return scanHazards(rows)
}

func (s *SQLite) CountsByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hazard_type, COUNT(*) AS n FROM hazards GROUP BY hazard_type ORDER BY n DESC, hazard_type ASC`)
	if err != nil {
		return nil, fmt.Errorf("counts by type: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

func (s *SQLite) OpenVsResolved(ctx context.Context) ([]StatusCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) AS n FROM hazards GROUP BY status ORDER BY status ASC`)
	if err != nil {
		return nil, fmt.Errorf("open vs resolved: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (s *SQLite) HazardByID(ctx context.Context, id int64) (hazard.Hazard, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hazard_type, severity, area, lat, lng, status, created_at
		 FROM hazards WHERE id = ?`, id)

	h, err := scanHazard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return hazard.Hazard{}, ErrNotFound
	}
	if err != nil {
		return hazard.Hazard{}, fmt.Errorf("hazard by id: %w", err)
	}
	return h, nil
}

func (s *SQLite) MostRecentHazard(ctx context.Context) (hazard.Hazard, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hazard_type, severity, area, lat, lng, status, created_at
		 FROM hazards ORDER BY created_at DESC, id DESC LIMIT 1`)

	h, err := scanHazard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return hazard.Hazard{}, ErrNotFound
	}
	if err != nil {
		return hazard.Hazard{}, fmt.Errorf("most recent hazard: %w", err)
	}
	return h, nil
}

// Insert adds a hazard row and returns its assigned id. Hazard mutation is
// the reporting application's job, not the analytic handlers'; this exists
// for seeding local databases and for tests.
func (s *SQLite) Insert(ctx context.Context, h hazard.Hazard) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO hazards (hazard_type, severity, area, lat, lng, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.Type, h.Severity, h.Area, nullFloat(h.Lat), nullFloat(h.Lng), h.Status, h.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert hazard: %w", err)
	}
	return res.LastInsertId()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHazard(row rowScanner) (hazard.Hazard, error) {
	var h hazard.Hazard
	var lat, lng sql.NullFloat64
	if err := row.Scan(&h.ID, &h.Type, &h.Severity, &h.Area, &lat, &lng, &h.Status, &h.CreatedAt); err != nil {
		return hazard.Hazard{}, err
	}
	if lat.Valid {
		h.Lat = &lat.Float64
	}
	if lng.Valid {
		h.Lng = &lng.Float64
	}
	return h, nil
}

func scanHazards(rows *sql.Rows) ([]hazard.Hazard, error) {
	var hazards []hazard.Hazard
	for rows.Next() {
		h, err := scanHazard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hazard: %w", err)
		}
		hazards = append(hazards, h)
	}
	return hazards, rows.Err()
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
