package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avaler/steam-mcp/internal/steam"
)

// OwnedGamesHandler returns the MCP tool handler for "steam-owned-games".
func OwnedGamesHandler(r *steam.Resolver, c *steam.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		id, errRes := resolvePlayer(ctx, r, req)
		if errRes != nil {
			return errRes, nil
		}
		includeFree := req.GetBool("include_free_games", false)
		games, err := c.OwnedGames(ctx, id, true, includeFree)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(games) == 0 {
			return mcp.NewToolResultText("The player owns no games, or their game list is private."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d games owned\n\n", len(games))
		for _, g := range games {
			writeGameLine(&sb, g.Name, g.AppID, g.PlaytimeForever, g.Playtime2Weeks)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// RecentGamesHandler returns the MCP tool handler for "steam-recent-games".
func RecentGamesHandler(r *steam.Resolver, c *steam.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		id, errRes := resolvePlayer(ctx, r, req)
		if errRes != nil {
			return errRes, nil
		}
		games, err := c.RecentGames(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(games) == 0 {
			return mcp.NewToolResultText("No games played in the last two weeks."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d games played in the last two weeks\n\n", len(games))
		for _, g := range games {
			writeGameLine(&sb, g.Name, g.AppID, g.PlaytimeForever, g.Playtime2Weeks)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func writeGameLine(sb *strings.Builder, name string, appID steam.AppID, forever, recent int) {
	if name == "" {
		name = "(unnamed app)"
	}
	fmt.Fprintf(sb, "- %s (appid %s): %s total", name, appID, formatPlaytime(forever))
	if recent > 0 {
		fmt.Fprintf(sb, ", %s in the last two weeks", formatPlaytime(recent))
	}
	sb.WriteString("\n")
}

// formatPlaytime renders the API's minute counters as hours.
func formatPlaytime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
