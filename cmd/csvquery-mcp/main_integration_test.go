//go:build integration

package main

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/averycrespi/csvquery-mcp/internal/client"
	"github.com/averycrespi/csvquery-mcp/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the server into a temporary directory
func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "csvquery-mcp")
	out, err := exec.Command("go", "build", "-o", bin, ".").CombinedOutput()
	require.NoError(t, err, "go build failed: %s", out)
	return bin
}

func TestMCPServerIntegration(t *testing.T) {
	bin := buildBinary(t)
	csvPath, err := filepath.Abs(sensorsPath)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.NewStdioClient(bin, "stdio", "--csv-path", csvPath, "--log-level", "error")
	require.NoError(t, c.Start(ctx))
	defer c.Stop(ctx)

	names, err := c.ListTools(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tools.ToolCSVSchema, tools.ToolCSVHead, tools.ToolSQL, tools.ToolSummary}, names)

	t.Run("sql count", func(t *testing.T) {
		payload, err := c.CallTool(ctx, tools.ToolSQL, map[string]any{"query": "SELECT COUNT(*) AS n FROM df"})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"n":500}]`, payload)
	})

	t.Run("filtered count", func(t *testing.T) {
		payload, err := c.CallTool(ctx, tools.ToolSQL, map[string]any{
			"query": "SELECT COUNT(*) AS n FROM df WHERE Height > 372.997",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"n":87}]`, payload)
	})

	t.Run("summary", func(t *testing.T) {
		payload, err := c.CallTool(ctx, tools.ToolSummary, nil)
		require.NoError(t, err)
		assert.Contains(t, payload, `"summary"`)
	})

	t.Run("query error", func(t *testing.T) {
		_, err := c.CallTool(ctx, tools.ToolSQL, map[string]any{"query": "SELECT * FROM nope"})
		var toolErr *client.ToolError
		require.True(t, errors.As(err, &toolErr))
	})
}

func TestCallCommandIntegration(t *testing.T) {
	bin := buildBinary(t)

	out, err := exec.Command(bin, "call", "--csv-path", sensorsPath, "--log-level", "error",
		tools.ToolSQL, "query=SELECT COUNT(*) AS n FROM df").Output()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"n":500}]`, string(out))
}
