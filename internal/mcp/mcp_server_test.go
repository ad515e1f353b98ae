package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecity/codecity/internal/contract"
	mcp_internal "github.com/codecity/codecity/internal/mcp"
	"github.com/codecity/codecity/schema"
)

func testBaseConfig() *contract.Config {
	return &contract.Config{
		ProjectRoot:            "/home/dev/project",
		MaxIssuesPerRepository: contract.DefaultMaxIssues,
		MaxFilesPerRepository:  contract.DefaultMaxFiles,
		DedupLineThreshold:     contract.DefaultDedupLineThreshold,
		CorrelationLineWindow:  contract.DefaultCorrelationLineWindow,
		HotspotMinScore:        contract.DefaultHotspotMinScore,
		SeverityWeights:        schema.DefaultSeverityWeights(),
		ToolPriority:           contract.DefaultToolPriority,
		ResultLimit:            contract.DefaultResultLimit,
		Output:                 schema.JSONOut,
		StoreBackend:           schema.NoneBackend,
	}
}

// Two findings two lines apart on the same file, reported by different
// tools, so the run yields one correlation group.
const testReports = `[
	{
		"toolName": "semgrep",
		"category": "security",
		"payload": [
			{"title": "SQL injection vulnerability", "path": "src/auth/login.ts", "severity": "ERROR", "line": 42}
		]
	},
	{
		"toolName": "sonarqube",
		"category": "quality",
		"payload": [
			{"title": "Unsanitized query parameter", "path": "src/auth/login.ts", "severity": "blocker", "line": 44}
		]
	}
]`

func TestMCPServerTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(testBaseConfig())
	ctx := context.Background()

	t.Run("analyze_findings returns summary", func(t *testing.T) {
		tool := s.GetTool("analyze_findings")
		require.NotNil(t, tool, "Tool analyze_findings should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "analyze_findings",
				Arguments: map[string]any{"reports": testReports},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var summary schema.Summary
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &summary))
		assert.Equal(t, 2, summary.TotalIssues)
		assert.Equal(t, 1, summary.TotalFiles)
		assert.Equal(t, 1, summary.CorrelationGroups)
		assert.ElementsMatch(t, []string{"semgrep", "sonarqube"}, summary.ToolsCovered)
	})

	t.Run("analyze_findings missing reports", func(t *testing.T) {
		tool := s.GetTool("analyze_findings")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "analyze_findings",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "reports is required")
	})

	t.Run("analyze_findings malformed manifest", func(t *testing.T) {
		tool := s.GetTool("analyze_findings")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "analyze_findings",
				Arguments: map[string]any{"reports": "{{{"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid report manifest")
	})

	t.Run("get_hotspots honors min_score", func(t *testing.T) {
		tool := s.GetTool("get_hotspots")
		require.NotNil(t, tool, "Tool get_hotspots should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_hotspots",
				Arguments: map[string]any{
					"reports":   testReports,
					"min_score": 0.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var hotspots []schema.Hotspot
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &hotspots))
		require.NotEmpty(t, hotspots)
		assert.Equal(t, "src/auth/login.ts", hotspots[0].CanonicalPath)
	})

	t.Run("get_correlation_groups returns group", func(t *testing.T) {
		tool := s.GetTool("get_correlation_groups")
		require.NotNil(t, tool, "Tool get_correlation_groups should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_correlation_groups",
				Arguments: map[string]any{"reports": testReports},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var groups []schema.CorrelationGroup
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &groups))
		require.Len(t, groups, 1)
		assert.Equal(t, "src/auth/login.ts", groups[0].CanonicalPath)
		assert.Equal(t, 2, groups[0].MemberCount())
		assert.Equal(t, schema.LineRange{Start: 42, End: 44}, groups[0].LineRange)
	})

	t.Run("get_city returns buildings", func(t *testing.T) {
		tool := s.GetTool("get_city")
		require.NotNil(t, tool, "Tool get_city should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_city",
				Arguments: map[string]any{"reports": testReports},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var city schema.CityScape
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &city))
		require.Len(t, city.Buildings, 1)
		assert.Equal(t, "bld:src/auth/login.ts", city.Buildings[0].ID)
		require.Len(t, city.Roads, 1)
		require.Len(t, city.Districts, 1)
		assert.Equal(t, "src/auth", city.Districts[0].Name)
	})
}
