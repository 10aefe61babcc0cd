// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"fmt"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/iocache"
	"github.com/huangsam/aiready/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// dimensionNames lists the accepted values of the dimension argument.
func dimensionNames() []string {
	names := make([]string, len(schema.AllDimensions))
	for i, d := range schema.AllDimensions {
		names[i] = string(d)
	}
	return names
}

// NewMCPServer initializes and configures the AI readiness MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, memo *iocache.MemoCache) *server.MCPServer {
	s := server.NewMCPServer(
		"AI Readiness Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		memo:    memo,
	}

	// --- 1. Tool: assess_repository ---
	s.AddTool(mcp.NewTool("assess_repository",
		mcp.WithDescription("Assess how ready a repository is for AI-assisted development from a code analysis file."),
		mcp.WithString("analysis_path", mcp.Description("Path to the JSON or YAML repository analysis."), mcp.Required()),
		mcp.WithString("repo_path", mcp.Description("Repository to probe for tooling and tests (defaults to the path in the analysis).")),
		mcp.WithNumber("target_score", mcp.Description("Score the effort estimate aims for (defaults to 80).")),
		mcp.WithBoolean("trend", mcp.Description("Compare against the latest stored assessment of the repository.")),
	), h.handleAssessRepository)

	// --- 2. Tool: compare_assessments ---
	s.AddTool(mcp.NewTool("compare_assessments",
		mcp.WithDescription("Compare two exported JSON assessments and report the trend."),
		mcp.WithString("current_path", mcp.Description("Path to the newer assessment."), mcp.Required()),
		mcp.WithString("previous_path", mcp.Description("Path to the older assessment."), mcp.Required()),
	), h.handleCompareAssessments)

	// --- 3. Tool: get_dimension_score ---
	s.AddTool(mcp.NewTool("get_dimension_score",
		mcp.WithDescription("Assess a repository and return the score and evidence of one dimension."),
		mcp.WithString("analysis_path", mcp.Description("Path to the JSON or YAML repository analysis."), mcp.Required()),
		mcp.WithString("dimension", mcp.Description("Dimension to report."), mcp.Required(), mcp.Enum(dimensionNames()...)),
		mcp.WithString("repo_path", mcp.Description("Repository to probe for tooling and tests.")),
	), h.handleGetDimensionScore)

	return s
}

// StartMCPServer starts the AI readiness MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	memo, err := iocache.NewMemoCache(iocache.DefaultMemoCapacity, iocache.DefaultMemoTTL)
	if err != nil {
		return fmt.Errorf("failed to create assessment memo: %w", err)
	}
	defer memo.Close()

	s := NewMCPServer(baseCfg, mgr, memo)
	return server.ServeStdio(s)
}
