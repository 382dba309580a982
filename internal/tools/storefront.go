package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avaler/steam-mcp/internal/storefront"
)

// StorePageHandler returns the MCP tool handler for "steam-store-page".
func StorePageHandler(pages *storefront.Pages) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		appID, err := requireAppID(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		page, err := pages.Fetch(ctx, appID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatAppPage(page)), nil
	}
}

func formatAppPage(page *storefront.AppPage) string {
	var sb strings.Builder
	if page.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(page.Title)
		sb.WriteString("\n\n")
	}
	if page.Description != "" {
		sb.WriteString(page.Description)
		sb.WriteString("\n\n")
	}
	sb.WriteString(page.Text)
	if page.URL != "" {
		sb.WriteString("\n\n")
		sb.WriteString(page.URL)
	}
	return sb.String()
}

// StoreSearchHandler returns the MCP tool handler for "steam-store-search".
func StoreSearchHandler(searcher *storefront.Searcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := req.GetInt("limit", 10)
		results, err := searcher.Search(ctx, q, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatSearchResults(results)), nil
	}
}

func formatSearchResults(results []storefront.SearchResult) string {
	if len(results) == 0 {
		return "No results."
	}
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s (appid %s)\n", i+1, r.Title, r.AppID)
		if r.Released != "" {
			fmt.Fprintf(&sb, "   Released: %s\n", r.Released)
		}
		if r.Price != "" {
			fmt.Fprintf(&sb, "   Price: %s\n", r.Price)
		}
		if r.Link != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Link)
		}
	}
	return sb.String()
}
