package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ironsheep/hazard-mcp/internal/hazard"
	"github.com/ironsheep/hazard-mcp/internal/store"
)

// defaultTopSevereLimit bounds top_severe_in_area row counts when the caller
// does not specify one.
const defaultTopSevereLimit = 10

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "query_hazards").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ContentItem is one entry of an MCP tool result's content array.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the MCP tool result envelope. Domain failures set IsError
// rather than surfacing as JSON-RPC errors, so the calling agent always
// receives an inspectable response object.
type ToolResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError"`
}

// handleToolsCall processes a tools/call request and executes the specified
// tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}],
//	  "isError": false
//	}
//
// Invalid requests, not-found hazards, data invariant violations, and
// upstream store failures all come back with isError set; only an unknown
// tool name or malformed params produce a JSON-RPC error response.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	switch name {
	case ToolQueryHazards:
		return s.instrument(name, func() *ToolResult { return s.handleQueryHazards(ctx, args) }), nil
	case ToolEstimateRepairPlan:
		return s.instrument(name, func() *ToolResult { return s.handleEstimateRepairPlan(ctx, args) }), nil
	case ToolProjectWorsening:
		return s.instrument(name, func() *ToolResult { return s.handleProjectWorsening(ctx, args) }), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// instrument records invocation count and duration for one tool call.
func (s *Server) instrument(tool string, fn func() *ToolResult) *ToolResult {
	start := time.Now()
	result := fn()

	outcome := "ok"
	if result.IsError {
		outcome = "error"
	}
	s.metrics.ToolInvocations.WithLabelValues(tool, outcome).Inc()
	s.metrics.ToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	return result
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// textResult wraps a value as a successful tool result with pretty-printed
// JSON text.
func textResult(v interface{}) *ToolResult {
	return &ToolResult{
		Content: []ContentItem{{Type: "text", Text: mustMarshalJSON(v)}},
	}
}

// errorResult wraps a message as a failed tool result.
func errorResult(format string, args ...interface{}) *ToolResult {
	return &ToolResult{
		Content: []ContentItem{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// countStore records one store operation's outcome.
func (s *Server) countStore(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.StoreRequests.WithLabelValues(operation, outcome).Inc()
}

// === query_hazards ===

type queryHazardsArgs struct {
	Kind  string `json:"kind"`
	Area  string `json:"area"`
	Limit int    `json:"limit"`
}

type queryHazardsResponse struct {
	Kind   QueryKind   `json:"kind"`
	Area   *string     `json:"area,omitempty"`
	Result interface{} `json:"result"`
}

func (s *Server) handleQueryHazards(ctx context.Context, args json.RawMessage) *ToolResult {
	var a queryHazardsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("invalid arguments: %v", err)
	}

	kind, err := ParseQueryKind(a.Kind)
	if err != nil {
		// Unknown kinds never reach the store.
		return errorResult("%v", err)
	}
	if a.Limit <= 0 {
		a.Limit = defaultTopSevereLimit
	}

	resp := queryHazardsResponse{Kind: kind}
	switch kind {
	case KindAreaWithMostHazards:
		resp.Result, err = s.store.AreaWithMostHazards(ctx)
	case KindTopSevereInArea:
		// The area passes through unmodified, empty included; whether an
		// empty area matches anything is the store's call.
		resp.Area = &a.Area
		resp.Result, err = s.store.TopSevereInArea(ctx, a.Area, a.Limit)
	case KindCountsByType:
		resp.Result, err = s.store.CountsByType(ctx)
	case KindOpenVsResolved:
		resp.Result, err = s.store.OpenVsResolved(ctx)
	}
	s.countStore(string(kind), err)
	if err != nil {
		return errorResult("hazard query failed: %v", err)
	}

	return textResult(resp)
}

// === estimate_repair_plan ===

type estimateRepairPlanArgs struct {
	HazardID *int64 `json:"hazard_id"`
}

type repairPlanResponse struct {
	HazardID int64 `json:"hazard_id"`
	Severity int   `json:"severity"`
	hazard.Plan
}

func (s *Server) handleEstimateRepairPlan(ctx context.Context, args json.RawMessage) *ToolResult {
	var a estimateRepairPlanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("invalid arguments: %v", err)
	}
	if a.HazardID == nil {
		return errorResult("hazard_id is required")
	}

	h, err := s.store.HazardByID(ctx, *a.HazardID)
	s.countStore("hazard_by_id", err)
	if errors.Is(err, store.ErrNotFound) {
		return errorResult("hazard %d not found", *a.HazardID)
	}
	if err != nil {
		return errorResult("hazard fetch failed: %v", err)
	}

	plan, err := hazard.PlanFor(h.Severity)
	if err != nil {
		// Severity should be 1..5 by invariant; anything else is corrupt
		// store data and must not silently produce a plan.
		return errorResult("invalid severity level %d on hazard %d", h.Severity, h.ID)
	}

	return textResult(repairPlanResponse{
		HazardID: h.ID,
		Severity: h.Severity,
		Plan:     plan,
	})
}

// === project_worsening ===

type projectWorseningArgs struct {
	HazardID  *int64   `json:"hazard_id"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Condition string   `json:"condition"`
}

type projectionInputs struct {
	SeverityNow  int     `json:"severity_now"`
	Condition    string  `json:"condition"`
	Multiplier   float64 `json:"weather_multiplier"`
	WeeklyGrowth float64 `json:"weekly_growth"`
}

type projectWorseningResponse struct {
	HazardID int64 `json:"hazard_id"`

	// Resolution is "id" for direct fetches and "most_recent" when
	// coordinates were substituted with the newest hazard.
	Resolution string `json:"resolution"`

	Inputs   projectionInputs  `json:"inputs"`
	Forecast hazard.Projection `json:"forecast"`
}

func (s *Server) handleProjectWorsening(ctx context.Context, args json.RawMessage) *ToolResult {
	var a projectWorseningArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return errorResult("invalid arguments: %v", err)
	}

	hasCoords := a.Lat != nil && a.Lng != nil
	if a.HazardID == nil && !hasCoords {
		return errorResult("provide hazard_id, or lat and lng")
	}

	var (
		h          hazard.Hazard
		resolution string
		err        error
	)
	if a.HazardID != nil {
		h, err = s.store.HazardByID(ctx, *a.HazardID)
		s.countStore("hazard_by_id", err)
		if errors.Is(err, store.ErrNotFound) {
			return errorResult("hazard %d not found", *a.HazardID)
		}
		resolution = "id"
	} else {
		// The store has no spatial search; recency stands in for proximity
		// and the response says so via the resolution field.
		h, err = s.store.MostRecentHazard(ctx)
		s.countStore("most_recent_hazard", err)
		if errors.Is(err, store.ErrNotFound) {
			return errorResult("no hazards in store")
		}
		resolution = "most_recent"
	}
	if err != nil {
		return errorResult("hazard fetch failed: %v", err)
	}

	condition := strings.ToLower(strings.TrimSpace(a.Condition))
	if condition == "" {
		condition = s.lookupCondition(ctx, a, h)
	}

	f := hazard.Project(h.Severity, condition)
	return textResult(projectWorseningResponse{
		HazardID:   h.ID,
		Resolution: resolution,
		Inputs: projectionInputs{
			SeverityNow:  f.StartSeverity,
			Condition:    condition,
			Multiplier:   f.Multiplier,
			WeeklyGrowth: f.WeeklyGrowth,
		},
		Forecast: f.Weeks,
	})
}

// lookupCondition asks the weather collaborator for the current condition at
// the request's coordinates, falling back to the hazard's own location. An
// empty return means neutral growth; weather failures degrade the forecast
// rather than failing it.
func (s *Server) lookupCondition(ctx context.Context, a projectWorseningArgs, h hazard.Hazard) string {
	if s.weather == nil {
		s.metrics.WeatherLookups.WithLabelValues("skipped").Inc()
		return ""
	}

	var lat, lng float64
	switch {
	case a.Lat != nil && a.Lng != nil:
		lat, lng = *a.Lat, *a.Lng
	case h.HasLocation():
		lat, lng = *h.Lat, *h.Lng
	default:
		s.metrics.WeatherLookups.WithLabelValues("skipped").Inc()
		return ""
	}

	condition, err := s.weather.CurrentCondition(ctx, lat, lng)
	if err != nil {
		s.logger.Warn("weather lookup failed; projecting with neutral growth", "error", err)
		s.metrics.WeatherLookups.WithLabelValues("error").Inc()
		return ""
	}
	s.metrics.WeatherLookups.WithLabelValues("ok").Inc()
	return condition
}
