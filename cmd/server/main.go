package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avaler/steam-mcp/internal/cache"
	"github.com/avaler/steam-mcp/internal/logger"
	"github.com/avaler/steam-mcp/internal/steam"
	"github.com/avaler/steam-mcp/internal/storefront"
	"github.com/avaler/steam-mcp/internal/tools"
)

type config struct {
	// APIKey is a Steam Web API key, https://steamcommunity.com/dev/apikey.
	APIKey string `env:"STEAM_API_KEY,required"`
	// CacheDB overrides where the storefront cache database lives. The log
	// path is read by the logger itself from STEAM_MCP_LOG.
	CacheDB string `env:"STEAM_MCP_CACHE_DB"`
}

func main() {
	if err := logger.InitFromEnv(); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Infof("Starting Steam MCP server")

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Errorf("config: %v", err)
		panic(err)
	}

	dbPath := cfg.CacheDB
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	_ = os.MkdirAll(filepath.Dir(dbPath), 0o755)
	store, err := cache.Open(dbPath, cache.Options{Bucket: "storefront", DefaultTTL: 15 * time.Minute})
	if err != nil {
		logger.Errorf("open storefront cache at %s: %v", dbPath, err)
		panic(err)
	}
	defer store.Close()
	logger.Infof("Opened storefront cache at %s", dbPath)

	client := steam.NewClient(cfg.APIKey)
	resolver := steam.NewResolver(client)
	pages := storefront.NewPages(store, 15*time.Minute)
	searcher := storefront.NewSearcher(store, 5*time.Minute)

	// A bad key fails every authenticated call later anyway; flag it early.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := client.ValidateKey(ctx); err != nil {
		logger.Warnf("API key validation failed: %v", err)
	}
	cancel()

	s := server.NewMCPServer(
		"Steam MCP",
		"0.1.0",
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)

	playerArg := mcp.WithString("player", mcp.Required(),
		mcp.Description("Vanity profile name or SteamID64 of the player"))
	appIDArg := mcp.WithNumber("appid", mcp.Required(),
		mcp.Description("Steam application id of the game"))

	s.AddTool(mcp.NewTool("steam-player",
		mcp.WithDescription(multiline(
			"Looks up a Steam player's public profile",
			"\nUsage notes:",
			"- Accepts either a vanity profile name or a SteamID64",
			"- Resolved identifiers are cached for 15 minutes, unknown names included",
		)),
		playerArg,
	), tools.PlayerHandler(resolver, client))

	s.AddTool(mcp.NewTool("steam-owned-games",
		mcp.WithDescription(multiline(
			"Lists the games a Steam player owns, with total playtime",
			"\nUsage notes:",
			"- Returns nothing when the player's game list is private",
		)),
		playerArg,
		mcp.WithBoolean("include_free_games",
			mcp.Description("Also list played free-to-play games (default false)")),
	), tools.OwnedGamesHandler(resolver, client))

	s.AddTool(mcp.NewTool("steam-recent-games",
		mcp.WithDescription("Lists the games a Steam player played in the last two weeks"),
		playerArg,
	), tools.RecentGamesHandler(resolver, client))

	s.AddTool(mcp.NewTool("steam-achievements",
		mcp.WithDescription(multiline(
			"Shows a player's achievement progress for one game",
			"\nFunctionality:",
			"- Merges the game's achievement definitions with the player's unlock state",
			"- Includes the global completion percentage of each achievement",
		)),
		playerArg,
		appIDArg,
		mcp.WithString("lang",
			mcp.Description("Language for achievement names and descriptions, e.g. \"en\"")),
	), tools.AchievementsHandler(resolver, client))

	s.AddTool(mcp.NewTool("steam-game-schema",
		mcp.WithDescription("Shows the stats and achievement definitions a game publishes"),
		appIDArg,
	), tools.GameSchemaHandler(client))

	s.AddTool(mcp.NewTool("steam-store-page",
		mcp.WithDescription(multiline(
			"Fetches a game's store page and returns its description as Markdown",
			"\nUsage notes:",
			"- Results are cached for 15 minutes",
		)),
		appIDArg,
	), tools.StorePageHandler(pages))

	s.AddTool(mcp.NewTool("steam-store-search",
		mcp.WithDescription("Searches the Steam store by title and returns matching apps"),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search terms")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 10)")),
	), tools.StoreSearchHandler(searcher))

	logger.Infof("Registered tools, serving on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("server error: %v", err)
	}
}

// multiline joins lines with newlines for tool descriptions.
func multiline(lines ...string) string { return strings.Join(lines, "\n") }

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", "steam-mcp", "storefront.db")
}
