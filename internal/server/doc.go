// Package server implements the MCP (Model Context Protocol) server for
// road hazard analytics tools.
//
// This package provides a JSON-RPC 2.0 server that exposes hazard analytics
// through the MCP protocol. It's designed to work with Claude and other
// MCP-compatible clients, letting an AI agent query a hazard store, price
// repairs, and forecast deterioration.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// An HTTP transport is also available (see HTTPServer): the same framing
// carried one request per POST to /mcp, with /healthz and /metrics
// alongside.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 3 hazard analytics tools:
//
//   - query_hazards: Run one of four named aggregate queries against the
//     hazard store (area_with_most_hazards, top_severe_in_area,
//     counts_by_type, open_vs_resolved)
//   - estimate_repair_plan: Resolve a hazard's severity tier into required
//     crew, equipment, and materials, priced for one standard workday
//   - project_worsening: Forecast a hazard's severity week by week over a
//     12-week horizon, scaled by the current (or supplied) weather condition
//
// # Collaborators
//
// Handlers hold no state of their own. Hazard data comes from a store.Store
// (Supabase or SQLite); the current weather condition comes from an optional
// weather.ConditionSource. Each tool call performs at most one store fetch
// and is an independent synchronous unit of work, so concurrent invocations
// need no coordination.
//
// # Error Handling
//
// Domain failures — unknown query kinds, missing hazards, out-of-range
// severities, store errors — are returned as tool results with isError set,
// so the calling agent always gets an inspectable response object. JSON-RPC
// error responses are reserved for protocol problems:
//   - code: -32602 malformed tools/call params
//   - code: -32000 unknown tool name
//   - code: -32601 unknown method
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(st, conditions, metrics, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
