// Package tools holds the MCP tool handlers. Each handler resolves its
// player argument through the caching resolver, so repeated calls for the
// same vanity name do not re-query the Steam API.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avaler/steam-mcp/internal/steam"
)

// resolvePlayer turns the request's "player" argument into a SteamID64,
// returning a ready-made error result when it cannot.
func resolvePlayer(ctx context.Context, r *steam.Resolver, req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, err := req.RequireString("player")
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	id, err := r.Resolve(ctx, raw)
	if err != nil {
		if errors.Is(err, steam.ErrPlayerNotFound) {
			return "", mcp.NewToolResultError(fmt.Sprintf("no Steam account matches %q", raw))
		}
		return "", mcp.NewToolResultError(err.Error())
	}
	return id, nil
}

// PlayerHandler returns the MCP tool handler for the "steam-player" tool.
func PlayerHandler(r *steam.Resolver, c *steam.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		}
		id, errRes := resolvePlayer(ctx, r, req)
		if errRes != nil {
			return errRes, nil
		}
		p, err := c.PlayerSummary(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if p == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no profile data for SteamID %s", id)), nil
		}
		return mcp.NewToolResultText(formatPlayer(p)), nil
	}
}

func formatPlayer(p *steam.Player) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(p.PersonaName)
	sb.WriteString("\n\n")
	sb.WriteString("- SteamID64: ")
	sb.WriteString(p.SteamID)
	sb.WriteString("\n- Profile: ")
	sb.WriteString(p.ProfileURL)
	if p.AvatarFull != "" {
		sb.WriteString("\n- Avatar: ")
		sb.WriteString(p.AvatarFull)
	}
	sb.WriteString("\n")
	return sb.String()
}
