package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avaler/steam-mcp/internal/steam"
)

func requireAppID(req mcp.CallToolRequest) (steam.AppID, error) {
	n, err := req.RequireInt("appid")
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("appid must be positive, got %d", n)
	}
	return steam.AppID(n), nil
}

// AchievementsHandler returns the MCP tool handler for "steam-achievements".
func AchievementsHandler(r *steam.Resolver, c *steam.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		id, errRes := resolvePlayer(ctx, r, req)
		if errRes != nil {
			return errRes, nil
		}
		appID, err := requireAppID(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		lang := req.GetString("lang", "")
		achievements, err := c.Achievements(ctx, id, appID, lang)
		if err != nil {
			if errors.Is(err, steam.ErrPrivateProfile) {
				return mcp.NewToolResultError("the player's profile is private"), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(achievements) == 0 {
			return mcp.NewToolResultText("This game has no achievements."), nil
		}
		return mcp.NewToolResultText(formatAchievements(achievements)), nil
	}
}

func formatAchievements(achievements []steam.Achievement) string {
	unlocked := 0
	for _, a := range achievements {
		if a.Achieved {
			unlocked++
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d achievements unlocked\n\n", unlocked, len(achievements))
	for _, a := range achievements {
		mark := " "
		if a.Achieved {
			mark = "x"
		}
		fmt.Fprintf(&sb, "- [%s] %s", mark, a.Name)
		if a.Description != "" {
			fmt.Fprintf(&sb, ": %s", a.Description)
		}
		if a.Percent > 0 {
			fmt.Fprintf(&sb, " (%.1f%% of players)", a.Percent)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// GameSchemaHandler returns the MCP tool handler for "steam-game-schema".
func GameSchemaHandler(c *steam.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		appID, err := requireAppID(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		schema, err := c.GameSchema(ctx, appID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if schema == nil {
			return mcp.NewToolResultText("The app publishes no schema."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", schema.GameName)
		if schema.GameVersion != "" {
			fmt.Fprintf(&sb, "Version %s\n\n", schema.GameVersion)
		}
		fmt.Fprintf(&sb, "%d achievements defined\n", len(schema.Stats.Achievements))
		for _, a := range schema.Stats.Achievements {
			fmt.Fprintf(&sb, "- %s (%s)", a.DisplayName, a.Name)
			if bool(a.Hidden) {
				sb.WriteString(" [hidden]")
			}
			sb.WriteString("\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
