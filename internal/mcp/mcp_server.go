// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codecity/codecity/internal/contract"
)

// reportsDescription documents the shared manifest parameter once.
const reportsDescription = "JSON array of tool reports. Each entry has toolName, category " +
	"(quality, security, performance, apm, dependency, architecture, formal, ai), " +
	"an optional format (unified or sarif), and the payload to parse."

// NewMCPServer initializes and configures the CodeCity MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"CodeCity Correlation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: analyze_findings ---
	s.AddTool(mcp.NewTool("analyze_findings",
		mcp.WithDescription("Normalize and correlate findings from multiple analysis tools, returning the run summary."),
		mcp.WithString("reports", mcp.Description(reportsDescription), mcp.Required()),
		mcp.WithString("project_root", mcp.Description("Repository root the findings refer to (defaults to the configured project root).")),
	), h.handleAnalyzeFindings)

	// --- 2. Tool: get_hotspots ---
	s.AddTool(mcp.NewTool("get_hotspots",
		mcp.WithDescription("Correlate findings and return the files and clusters whose risk score clears the threshold."),
		mcp.WithString("reports", mcp.Description(reportsDescription), mcp.Required()),
		mcp.WithString("project_root", mcp.Description("Repository root the findings refer to.")),
		mcp.WithNumber("min_score", mcp.Description("Hotspot score threshold (0-100). Defaults to the configured threshold.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetHotspots)

	// --- 3. Tool: get_correlation_groups ---
	s.AddTool(mcp.NewTool("get_correlation_groups",
		mcp.WithDescription("Correlate findings and return the proximity clusters of issues on the same file."),
		mcp.WithString("reports", mcp.Description(reportsDescription), mcp.Required()),
		mcp.WithString("project_root", mcp.Description("Repository root the findings refer to.")),
		mcp.WithNumber("window", mcp.Description("Correlation line window. Defaults to the configured window.")),
	), h.handleGetCorrelationGroups)

	// --- 4. Tool: get_city ---
	s.AddTool(mcp.NewTool("get_city",
		mcp.WithDescription("Correlate findings and return the 3D city payload: buildings, roads, and districts."),
		mcp.WithString("reports", mcp.Description(reportsDescription), mcp.Required()),
		mcp.WithString("project_root", mcp.Description("Repository root the findings refer to.")),
	), h.handleGetCity)

	return s
}

// StartMCPServer starts the CodeCity MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
