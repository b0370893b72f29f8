package server

import "fmt"

// Tool names form a closed set; executeTool switches exhaustively over it.
const (
	ToolQueryHazards       = "query_hazards"
	ToolEstimateRepairPlan = "estimate_repair_plan"
	ToolProjectWorsening   = "project_worsening"
)

// QueryKind selects one of the named aggregate queries the store exposes.
// Each kind maps 1:1 to a store operation; the dispatcher adds no
// computation of its own.
type QueryKind string

const (
	KindAreaWithMostHazards QueryKind = "area_with_most_hazards"
	KindTopSevereInArea     QueryKind = "top_severe_in_area"
	KindCountsByType        QueryKind = "counts_by_type"
	KindOpenVsResolved      QueryKind = "open_vs_resolved"
)

// ParseQueryKind validates a requested kind against the closed set.
func ParseQueryKind(s string) (QueryKind, error) {
	switch k := QueryKind(s); k {
	case KindAreaWithMostHazards, KindTopSevereInArea, KindCountsByType, KindOpenVsResolved:
		return k, nil
	}
	return "", fmt.Errorf("unknown kind %q; use %s, %s, %s or %s",
		s, KindAreaWithMostHazards, KindTopSevereInArea, KindCountsByType, KindOpenVsResolved)
}

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        ToolQueryHazards,
			Description: "Answer analytics questions over the hazard store. Kinds: area_with_most_hazards, top_severe_in_area, counts_by_type, open_vs_resolved.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{string(KindAreaWithMostHazards), string(KindTopSevereInArea), string(KindCountsByType), string(KindOpenVsResolved)},
						"description": "Which aggregate query to run",
					},
					"area": map[string]interface{}{
						"type":        "string",
						"description": "Area name for top_severe_in_area; ignored by other kinds",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum rows for top_severe_in_area (default 10)",
						"default":     10,
					},
				},
				"required": []string{"kind"},
			},
		},
		{
			Name:        ToolEstimateRepairPlan,
			Description: "Build a severity-based repair plan for a hazard: required crew, equipment, materials, and an estimated cost for one standard workday.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hazard_id": map[string]interface{}{
						"type":        "number",
						"description": "Hazard id as assigned by the store",
					},
				},
				"required": []string{"hazard_id"},
			},
		},
		{
			Name:        ToolProjectWorsening,
			Description: "Project a hazard's severity week by week over a 12-week horizon under a weather condition. Resolve the hazard by hazard_id, or by lat/lng (which resolves to the most recently created hazard, not true spatial proximity).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hazard_id": map[string]interface{}{
						"type":        "number",
						"description": "Hazard id as assigned by the store",
					},
					"lat": map[string]interface{}{
						"type":        "number",
						"description": "Latitude, used with lng when hazard_id is absent",
					},
					"lng": map[string]interface{}{
						"type":        "number",
						"description": "Longitude, used with lat when hazard_id is absent",
					},
					"condition": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"clear", "clouds", "drizzle", "rain", "thunderstorm", "snow", "mist"},
						"description": "Weather condition override. Omit to use the live condition at the hazard's coordinates; unrecognized labels behave like clear.",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
