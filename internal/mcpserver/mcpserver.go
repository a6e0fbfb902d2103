// Package mcpserver exposes unused code detection over the Model Context
// Protocol so agent tooling can run analysis without shelling out.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/vestigehq/vestige/pkg/config"
	"github.com/vestigehq/vestige/pkg/detector"
)

// Server wraps the MCP server and registers the detection tools.
type Server struct {
	server   *mcp.Server
	detector *detector.Detector
}

// NewServer creates an MCP server backed by one detector instance. Results
// persist across tool calls within the session.
func NewServer(version string, cfg *config.Config) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vestige",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server:   server,
		detector: detector.New(cfg, detector.NewLogger(false)),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_unused",
		Description: describeDetect(),
	}, s.handleDetect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cleanup_preview",
		Description: describeCleanup(),
	}, s.handleCleanup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detection_summary",
		Description: describeSummary(),
	}, s.handleSummary)
}

func describeDetect() string {
	return "Scan a TypeScript project for unused variables, imports, exports and " +
		"unreachable code. Returns per-file findings with confidence and risk " +
		"scores plus prioritized cleanup recommendations. Results are cached " +
		"for follow-up cleanup_preview and detection_summary calls."
}

func describeCleanup() string {
	return "Preview or apply automated cleanup for one previously analyzed file. " +
		"Only recommendations marked automatable are considered; safe_only " +
		"additionally excludes anything with listed risks. Dry-run by default: " +
		"reports what would change without touching the file."
}

func describeSummary() string {
	return "Aggregate counts across the last detection run: unused symbols per " +
		"category, dead code volume, recommendation totals and automation " +
		"potential. Requires a prior detect_unused call."
}
