// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Keepwatch MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Keepwatch Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_salesrank_stats ---
	s.AddTool(mcp.NewTool("get_salesrank_stats",
		mcp.WithDescription("Compute sales rank statistics (average, min, max, change count) for Amazon products over a recent window."),
		mcp.WithString("asins", mcp.Description("Comma-separated ASINs to analyze (e.g., 'B0ABCD1234,B0EFGH5678')."), mcp.Required()),
		mcp.WithNumber("days", mcp.Description("Analysis window in days, counted back from now. Defaults to 30.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of recent samples returned per product.")),
	), h.handleGetSalesRankStats)

	// --- 2. Tool: get_buybox_share ---
	s.AddTool(mcp.NewTool("get_buybox_share",
		mcp.WithDescription("Compute monthly buybox ownership shares (day, count and time share) for a seller on Amazon products."),
		mcp.WithString("asins", mcp.Description("Comma-separated ASINs to analyze."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Calendar year to analyze."), mcp.Required()),
		mcp.WithString("months", mcp.Description("Comma-separated month numbers (e.g., '1,2,3'). Defaults to all months.")),
		mcp.WithString("seller", mcp.Description("Seller ID to compute ownership for. Defaults to Amazon itself.")),
	), h.handleGetBuyboxShare)

	// --- 3. Tool: get_current_owner ---
	s.AddTool(mcp.NewTool("get_current_owner",
		mcp.WithDescription("Report the current buybox holder (Amazon, 3rd Party, or No Buybox) for Amazon products."),
		mcp.WithString("asins", mcp.Description("Comma-separated ASINs to analyze."), mcp.Required()),
	), h.handleGetCurrentOwner)

	return s
}

// StartMCPServer starts the Keepwatch MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
