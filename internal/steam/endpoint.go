package steam

import (
	"net/url"
	"strconv"
)

// Production hosts. Tests point a Client at httptest servers instead.
const (
	defaultAPIBase = "https://api.steampowered.com"
	defaultCDNBase = "https://cdn.cloudflare.steamstatic.com/steam/apps"
)

func (c *Client) apiURL(path string, q url.Values) string {
	return c.apiBase + path + "?" + q.Encode()
}

func (c *Client) ownedGamesURL(steamID string, includeAppInfo, includeFree bool) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamid", steamID)
	q.Set("include_appinfo", strconv.FormatBool(includeAppInfo))
	q.Set("include_played_free_games", strconv.FormatBool(includeFree))
	return c.apiURL("/IPlayerService/GetOwnedGames/v0001/", q)
}

func (c *Client) recentGamesURL(steamID string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamid", steamID)
	return c.apiURL("/IPlayerService/GetRecentlyPlayedGames/v0001/", q)
}

func (c *Client) playerAchievementsURL(steamID string, appID AppID, lang string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamid", steamID)
	q.Set("appid", appID.String())
	if lang != "" {
		q.Set("l", lang)
	}
	return c.apiURL("/ISteamUserStats/GetPlayerAchievements/v0001/", q)
}

func (c *Client) resolveVanityURL(vanity string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("vanityurl", vanity)
	return c.apiURL("/ISteamUser/ResolveVanityURL/v1/", q)
}

func (c *Client) playerSummariesURL(steamID string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamids", steamID)
	return c.apiURL("/ISteamUser/GetPlayerSummaries/v2/", q)
}

// Achievement percentages are one of the few keyless endpoints, and take the
// app id as "gameid" rather than "appid".
func (c *Client) achievementPercentagesURL(appID AppID) string {
	q := url.Values{}
	q.Set("gameid", appID.String())
	return c.apiURL("/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/", q)
}

func (c *Client) gameSchemaURL(appID AppID) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("appid", appID.String())
	return c.apiURL("/ISteamUserStats/GetSchemaForGame/v0002/", q)
}

func (c *Client) smallCapsuleURL(appID AppID) string {
	return c.cdnBase + "/" + appID.String() + "/capsule_231x87.jpg"
}

func (c *Client) libraryCapsuleURL(appID AppID) string {
	return c.cdnBase + "/" + appID.String() + "/library_600x900.jpg"
}
