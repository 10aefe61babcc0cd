package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/aiready/core"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/ingest"
	"github.com/huangsam/aiready/internal/iocache"
	"github.com/huangsam/aiready/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	memo    *iocache.MemoCache
}

// assess loads an analysis and assesses it, reusing memoised results when no trend is requested.
func (h *toolHandler) assess(ctx context.Context, cfg *contract.Config, analysisPath string, trend bool) (*schema.AIReadinessAssessment, error) {
	analysis, err := ingest.LoadFile(analysisPath)
	if err != nil {
		return nil, err
	}
	if cfg.RepoPath != "" {
		analysis.RepositoryPath = cfg.RepoPath
	}

	key := fmt.Sprintf("%s:%d", core.Fingerprint(analysis), cfg.TargetScore)
	if !trend && h.memo != nil {
		if a, ok := h.memo.Get(key); ok {
			contract.Logger.WithField("repo", analysis.RepositoryPath).Debug("memoised assessment reused")
			return a, nil
		}
	}

	assessCfg := cfg.AssessmentConfig()
	if trend && h.mgr != nil {
		if store := h.mgr.GetHistoryStore(); store != nil {
			previous, err := store.LatestAssessment(analysis.RepositoryPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load previous assessment: %w", err)
			}
			assessCfg.PreviousAssessment = previous
		}
	}

	detector, err := core.NewDetector(cfg)
	if err != nil {
		return nil, err
	}
	assessor := core.NewAssessor(detector, core.WithDetectionTimeout(cfg.DetectionTimeout))
	a, err := assessor.AssessRepository(ctx, analysis, assessCfg, nil)
	if err != nil {
		return nil, err
	}
	if !trend && h.memo != nil {
		h.memo.Set(key, a)
	}
	return a, nil
}

func (h *toolHandler) handleAssessRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analysisPath, err := request.RequireString("analysis_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if target := request.GetInt("target_score", 0); target != 0 {
		if target < 1 || target > 100 {
			return mcp.NewToolResultError(fmt.Sprintf("target_score must be between 1 and 100, got %d", target)), nil
		}
		cfg.TargetScore = target
	}

	a, err := h.assess(ctx, cfg, analysisPath, request.GetBool("trend", false))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(a, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareAssessments(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	currentPath, err := request.RequireString("current_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	previousPath, err := request.RequireString("previous_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	current, err := core.LoadAssessment(currentPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load current assessment: %v", err)), nil
	}
	previous, err := core.LoadAssessment(previousPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load previous assessment: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(core.CompareAssessments(current, previous), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDimensionScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analysisPath, err := request.RequireString("analysis_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("dimension")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dimension, ok := contract.ParseDimension(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown dimension %q", name)), nil
	}
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	a, err := h.assess(ctx, cfg, analysisPath, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}
	score, ok := core.GetDimensionScore(a, dimension)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("dimension %s was not scored", dimension)), nil
	}

	jsonData, _ := json.MarshalIndent(score, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
