package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codecity/codecity/adapter"
	"github.com/codecity/codecity/core"
	"github.com/codecity/codecity/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// runCorrelation parses the reports manifest and runs the full pipeline on
// a per-request config clone. A resource-exhausted run still returns its
// partial result; every other failure surfaces to the caller.
func runCorrelation(ctx context.Context, cfg *contract.Config, reportsJSON string) (*core.UnifiedResult, error) {
	if reportsJSON == "" {
		return nil, errors.New("reports is required")
	}
	reports, err := adapter.ParseReportSet([]byte(reportsJSON))
	if err != nil {
		return nil, err
	}

	engine, err := core.NewCorrelationCore(cfg, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for i := range reports {
		err := engine.IngestRaw(ctx, &reports[i].Adapter, reports[i].Payload)
		if errors.Is(err, core.ErrResourceExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return engine.Finish(), nil
}

func (h *toolHandler) handleAnalyzeFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_root", ""); p != "" {
		cfg.ProjectRoot = p
	}

	result, err := runCorrelation(ctx, cfg, request.GetString("reports", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Summary(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHotspots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_root", ""); p != "" {
		cfg.ProjectRoot = p
	}
	if score := request.GetInt("min_score", -1); score >= 0 && score <= 100 {
		cfg.HotspotMinScore = score
	}

	result, err := runCorrelation(ctx, cfg, request.GetString("reports", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	hotspots := result.Hotspots
	if limit := request.GetInt("limit", 0); limit > 0 && len(hotspots) > limit {
		hotspots = hotspots[:limit]
	}

	jsonData, _ := json.MarshalIndent(hotspots, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCorrelationGroups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_root", ""); p != "" {
		cfg.ProjectRoot = p
	}
	if window := request.GetInt("window", 0); window > 0 {
		cfg.CorrelationLineWindow = window
	}

	result, err := runCorrelation(ctx, cfg, request.GetString("reports", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Groups, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_root", ""); p != "" {
		cfg.ProjectRoot = p
	}

	result, err := runCorrelation(ctx, cfg, request.GetString("reports", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	city := core.BuildCity(result)
	jsonData, _ := json.MarshalIndent(city, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
