// Package steam wraps the Steam Web API: typed lookups for games, players,
// and achievements, plus a caching resolver that turns vanity names into
// canonical SteamID64 strings.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 20 * time.Second

// portalAppID is used to probe key validity; Portal's schema is stable.
const portalAppID = AppID(400)

// Client issues requests against the Steam Web API and the image CDN.
// All methods are safe for concurrent use.
type Client struct {
	apiKey  string
	hc      *http.Client
	apiBase string
	cdnBase string
}

// NewClient returns a Client authenticated with the given Web API key.
func NewClient(apiKey string) *Client {
	return NewClientWithHTTP(apiKey, &http.Client{Timeout: requestTimeout})
}

// NewClientWithHTTP returns a Client using the provided HTTP client, which
// owns any timeout or retry policy.
func NewClientWithHTTP(apiKey string, hc *http.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		hc:      hc,
		apiBase: defaultAPIBase,
		cdnBase: defaultCDNBase,
	}
}

// getJSON issues a GET and decodes a 2xx body into dst. Transport failures
// come back wrapped, non-2xx statuses as *StatusError, and bodies that do not
// match dst as *DecodeError.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("steam: %s: %w", endpoint, err)
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("steam: %s: %w", endpoint, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{Endpoint: endpoint, Status: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

func (c *Client) getBytes(ctx context.Context, endpoint, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("steam: %s: %w", endpoint, err)
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("steam: %s: %w", endpoint, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("steam: %s: %w", endpoint, err)
	}
	return body, res.StatusCode, nil
}

// OwnedGames returns the games owned by the given SteamID64, optionally with
// app info (names, icons) and played free games included.
func (c *Client) OwnedGames(ctx context.Context, steamID string, includeAppInfo, includeFree bool) ([]Game, error) {
	var body struct {
		Response struct {
			Games []Game `json:"games"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "GetOwnedGames", c.ownedGamesURL(steamID, includeAppInfo, includeFree), &body); err != nil {
		return nil, err
	}
	return body.Response.Games, nil
}

// RecentGames returns the games the given player played in the last two weeks.
func (c *Client) RecentGames(ctx context.Context, steamID string) ([]RecentGame, error) {
	var body struct {
		Response struct {
			Games []RecentGame `json:"games"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "GetRecentlyPlayedGames", c.recentGamesURL(steamID), &body); err != nil {
		return nil, err
	}
	return body.Response.Games, nil
}

// PlayerAchievements returns the player's unlock state for every achievement
// of the given game. lang, when non-empty, localizes names and descriptions.
// A private profile surfaces as ErrPrivateProfile.
func (c *Client) PlayerAchievements(ctx context.Context, steamID string, appID AppID, lang string) ([]PlayerAchievement, error) {
	const endpoint = "GetPlayerAchievements"
	var body struct {
		PlayerStats json.RawMessage `json:"playerstats"`
	}
	err := c.getJSON(ctx, endpoint, c.playerAchievementsURL(steamID, appID, lang), &body)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusForbidden {
			return nil, ErrPrivateProfile
		}
		return nil, err
	}
	if len(body.PlayerStats) == 0 {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("missing playerstats object")}
	}
	var stats struct {
		Error        string              `json:"error"`
		Achievements []PlayerAchievement `json:"achievements"`
	}
	if err := json.Unmarshal(body.PlayerStats, &stats); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	// The API reports per-game errors (e.g. "Requested app has no stats")
	// inside a 200 body.
	if stats.Error != "" {
		return nil, &StatusError{Endpoint: endpoint, Status: http.StatusBadGateway, Message: stats.Error}
	}
	return stats.Achievements, nil
}

// PlayerSummary returns the public profile for the given SteamID64, or nil
// when the id matches no account.
func (c *Client) PlayerSummary(ctx context.Context, steamID string) (*Player, error) {
	var body struct {
		Response struct {
			Players []Player `json:"players"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "GetPlayerSummaries", c.playerSummariesURL(steamID), &body); err != nil {
		return nil, err
	}
	if len(body.Response.Players) == 0 {
		return nil, nil
	}
	p := body.Response.Players[0]
	return &p, nil
}

// AchievementPercentages returns the global completion rate of every
// achievement of the given game, or nil when the game has none.
func (c *Client) AchievementPercentages(ctx context.Context, appID AppID) ([]AchievementPercentage, error) {
	var body struct {
		AchievementPercentages struct {
			Achievements []AchievementPercentage `json:"achievements"`
		} `json:"achievementpercentages"`
	}
	err := c.getJSON(ctx, "GetGlobalAchievementPercentagesForApp", c.achievementPercentagesURL(appID), &body)
	if err != nil {
		// The endpoint answers 403 for apps without achievements.
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusForbidden {
			return nil, nil
		}
		return nil, err
	}
	return body.AchievementPercentages.Achievements, nil
}

// ResolveVanityURL resolves a profile's custom URL name to its SteamID64.
// The second return reports whether the name resolved; the API answers 200
// with a message body for unknown names, discriminated here by shape.
func (c *Client) ResolveVanityURL(ctx context.Context, vanity string) (string, bool, error) {
	var body struct {
		Response struct {
			SteamID string `json:"steamid"`
			Message string `json:"message"`
			Success int    `json:"success"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "ResolveVanityURL", c.resolveVanityURL(vanity), &body); err != nil {
		return "", false, err
	}
	if body.Response.SteamID == "" {
		return "", false, nil
	}
	return body.Response.SteamID, true, nil
}

// GameSchema returns the stat and achievement definitions of the given game,
// or nil when the app publishes no schema.
func (c *Client) GameSchema(ctx context.Context, appID AppID) (*GameSchema, error) {
	const endpoint = "GetSchemaForGame"
	var body struct {
		Game json.RawMessage `json:"game"`
	}
	if err := c.getJSON(ctx, endpoint, c.gameSchemaURL(appID), &body); err != nil {
		return nil, err
	}
	if len(body.Game) == 0 {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("missing game object")}
	}
	var schema GameSchema
	if err := json.Unmarshal(body.Game, &schema); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if schema.GameName == "" && len(schema.Stats.Achievements) == 0 {
		// "game": {} means the app exists but has no schema.
		return nil, nil
	}
	return &schema, nil
}

// ValidateKey checks the configured API key by fetching a schema known to
// exist.
func (c *Client) ValidateKey(ctx context.Context) error {
	_, err := c.GameSchema(ctx, portalAppID)
	return err
}

// ProfileAvatar fetches the full-size avatar image of the given player.
func (c *Client) ProfileAvatar(ctx context.Context, p *Player) ([]byte, error) {
	const endpoint = "ProfileAvatar"
	body, status, err := c.getBytes(ctx, endpoint, p.AvatarFull)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Endpoint: endpoint, Status: status}
	}
	return body, nil
}

// SmallCapsule fetches the small capsule image of the given game from the CDN.
func (c *Client) SmallCapsule(ctx context.Context, appID AppID) ([]byte, error) {
	const endpoint = "SmallCapsule"
	body, status, err := c.getBytes(ctx, endpoint, c.smallCapsuleURL(appID))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Endpoint: endpoint, Status: status}
	}
	return body, nil
}

// LibraryCapsule fetches the vertical library capsule of the given game, or
// nil when the CDN has none for this app.
func (c *Client) LibraryCapsule(ctx context.Context, appID AppID) ([]byte, error) {
	const endpoint = "LibraryCapsule"
	body, status, err := c.getBytes(ctx, endpoint, c.libraryCapsuleURL(appID))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Endpoint: endpoint, Status: status}
	}
	return body, nil
}
