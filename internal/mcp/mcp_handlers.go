package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/keepwatch/core"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// splitASINs turns a comma-separated ASIN argument into a slice.
func splitASINs(s string) []string {
	var asins []string
	for part := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			asins = append(asins, trimmed)
		}
	}
	return asins
}

func (h *toolHandler) handleGetSalesRankStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	asins := splitASINs(request.GetString("asins", ""))
	if err := contract.RevalidateASINs(cfg, asins); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid asins: %v", err)), nil
	}
	if len(cfg.ASINs) == 0 {
		return mcp.NewToolResultError("at least one ASIN is required"), nil
	}
	if d := request.GetInt("days", 0); d > 0 {
		if d > contract.MaxDays {
			return mcp.NewToolResultError(fmt.Sprintf("days cannot exceed %d", contract.MaxDays)), nil
		}
		cfg.Days = d
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	reports, _, err := core.GetSalesRankResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBuyboxShare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	asins := splitASINs(request.GetString("asins", ""))
	if err := contract.RevalidateASINs(cfg, asins); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid asins: %v", err)), nil
	}
	if len(cfg.ASINs) == 0 {
		return mcp.NewToolResultError("at least one ASIN is required"), nil
	}
	if y := request.GetInt("year", 0); y > 0 {
		if y < contract.MinYear || y > contract.MaxYear {
			return mcp.NewToolResultError(fmt.Sprintf("year must be between %d and %d", contract.MinYear, contract.MaxYear)), nil
		}
		cfg.Year = y
	}
	if err := contract.RevalidateMonths(cfg, request.GetString("months", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid months: %v", err)), nil
	}
	if s := request.GetString("seller", ""); s != "" {
		cfg.Seller = s
	}

	reports, _, err := core.GetBuyboxResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCurrentOwner(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	asins := splitASINs(request.GetString("asins", ""))
	if err := contract.RevalidateASINs(cfg, asins); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid asins: %v", err)), nil
	}
	if len(cfg.ASINs) == 0 {
		return mcp.NewToolResultError("at least one ASIN is required"), nil
	}

	reports, _, err := core.GetOwnerResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
