package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"
	"github.com/vestigehq/vestige/internal/cleanup"
	"github.com/vestigehq/vestige/pkg/detector"
)

// DetectInput selects what to scan.
type DetectInput struct {
	Path string `json:"path,omitempty" jsonschema:"Root directory to scan. Defaults to current directory."`
}

// CleanupInput targets one analyzed file.
type CleanupInput struct {
	File     string `json:"file" jsonschema:"Path of a file from the last detection run."`
	SafeOnly *bool  `json:"safe_only,omitempty" jsonschema:"Skip recommendations with listed risks. Default true."`
	Apply    bool   `json:"apply,omitempty" jsonschema:"Write changes to disk instead of previewing."`
}

// SummaryInput has no options.
type SummaryInput struct{}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	text, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(text)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) handleDetect(ctx context.Context, req *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, any, error) {
	root := input.Path
	if root == "" {
		root = "."
	}

	results, err := s.detector.Detect(root, nil)
	if err != nil {
		if errors.Is(err, detector.ErrAnalysisInProgress) {
			return toolError("a detection run is already in progress")
		}
		return toolError(err.Error())
	}

	return toolResult(struct {
		Results any `json:"results" toon:"results"`
		Summary any `json:"summary" toon:"summary"`
	}{results, s.detector.Summary()})
}

func (s *Server) handleCleanup(ctx context.Context, req *mcp.CallToolRequest, input CleanupInput) (*mcp.CallToolResult, any, error) {
	if input.File == "" {
		return toolError("file is required")
	}

	opts := cleanup.DefaultOptions()
	if input.SafeOnly != nil {
		opts.SafeOnly = *input.SafeOnly
	}
	opts.DryRun = !input.Apply

	res, err := s.detector.Cleanup(input.File, opts)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(res)
}

func (s *Server) handleSummary(ctx context.Context, req *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, any, error) {
	status := s.detector.Status()
	if status.ResultsCount == 0 && status.LastAnalysis == nil {
		return toolError("no detection results: run detect_unused first")
	}

	return toolResult(struct {
		Summary any `json:"summary" toon:"summary"`
		Status  any `json:"status" toon:"status"`
	}{s.detector.Summary(), status})
}
