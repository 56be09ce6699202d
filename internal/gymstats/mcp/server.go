package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer builds an MCP server with read-only gym tools: schema, exercise
// vocabulary, month calendar, day summary and exercise stats.
// The main backend mounts it at /mcp, cmd/gymstats_mcp serves it over stdio.
func NewServer(svc *ContextService, version string) *server.MCPServer {
	s := server.NewMCPServer("gymstats", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Gym workout log. Query logged sets, superset pairs and per-exercise stats of a Telegram chat (owner)."),
	)

	h := NewHandler(svc)
	s.AddTools(
		server.ServerTool{Tool: toolGetGymSchema, Handler: h.GetGymSchema},
		server.ServerTool{Tool: toolListExercises, Handler: h.ListExercises},
		server.ServerTool{Tool: toolGetMonthCalendar, Handler: h.GetMonthCalendar},
		server.ServerTool{Tool: toolGetDaySummary, Handler: h.GetDaySummary},
		server.ServerTool{Tool: toolGetExerciseStats, Handler: h.GetExerciseStats},
	)

	return s
}
