package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ironsheep/hazard-mcp/internal/hazard"
)

// Supabase implements Store against a Supabase project's PostgREST API.
// Row fetches go through the REST table endpoint; the four aggregates are
// database functions invoked by name through /rest/v1/rpc, one per query
// kind.
type Supabase struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSupabase creates a Supabase store client. baseURL is the project URL
// (https://<ref>.supabase.co) and apiKey the service-role or anon key.
func NewSupabase(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Supabase {
	return &Supabase{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (s *Supabase) AreaWithMostHazards(ctx context.Context) (AreaCount, error) {
	var rows []AreaCount
	if err := s.rpc(ctx, "area_with_most_hazards", nil, &rows); err != nil {
		return AreaCount{}, err
	}
	if len(rows) == 0 {
		return AreaCount{}, nil
	}
	return rows[0], nil
}

func (s *Supabase) TopSevereInArea(ctx context.Context, area string, limit int) ([]hazard.Hazard, error) {
	args := map[string]interface{}{"area": area, "max_rows": limit}
	var rows []hazard.Hazard
	if err := s.rpc(ctx, "top_severe_in_area", args, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Supabase) CountsByType(ctx context.Context) ([]TypeCount, error) {
	var rows []TypeCount
	if err := s.rpc(ctx, "counts_by_type", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Supabase) OpenVsResolved(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	if err := s.rpc(ctx, "open_vs_resolved", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Supabase) HazardByID(ctx context.Context, id int64) (hazard.Hazard, error) {
	path := fmt.Sprintf("/rest/v1/hazards?id=eq.%d&limit=1", id)
	var rows []hazard.Hazard
	if err := s.get(ctx, path, &rows); err != nil {
		return hazard.Hazard{}, err
	}
	if len(rows) == 0 {
		return hazard.Hazard{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *Supabase) MostRecentHazard(ctx context.Context) (hazard.Hazard, error) {
	var rows []hazard.Hazard
	if err := s.get(ctx, "/rest/v1/hazards?order=created_at.desc&limit=1", &rows); err != nil {
		return hazard.Hazard{}, err
	}
	if len(rows) == 0 {
		return hazard.Hazard{}, ErrNotFound
	}
	return rows[0], nil
}

// get performs a PostgREST table read and decodes the row array into out.
func (s *Supabase) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return s.do(req, out)
}

// rpc invokes a named database function through PostgREST and decodes its
// result into out. A nil args map posts an empty object.
func (s *Supabase) rpc(ctx context.Context, name string, args map[string]interface{}, out interface{}) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode rpc args: %w", err)
	}

	url := s.baseURL + "/rest/v1/rpc/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *Supabase) do(req *http.Request, out interface{}) error {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("supabase error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
