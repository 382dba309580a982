package steam

import (
	"encoding/json"
	"strconv"
)

// AppID identifies an application (game) on the platform.
type AppID uint32

func (a AppID) String() string { return strconv.FormatUint(uint64(a), 10) }

// Game is one entry of a player's library.
type Game struct {
	AppID           AppID  `json:"appid"`
	Name            string `json:"name,omitempty"`
	ImgIconURL      string `json:"img_icon_url,omitempty"`
	ImgLogoURL      string `json:"img_logo_url,omitempty"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
}

// RecentGame is one entry of a player's recently played list.
type RecentGame struct {
	AppID           AppID  `json:"appid"`
	Name            string `json:"name,omitempty"`
	ImgIconURL      string `json:"img_icon_url,omitempty"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
}

// Player is a public profile summary.
type Player struct {
	SteamID     string `json:"steamid"`
	ProfileURL  string `json:"profileurl"`
	PersonaName string `json:"personaname"`
	AvatarFull  string `json:"avatarfull"`
}

// GameSchema describes a game's stats and achievements as published by the
// API, before any per-player data is applied.
type GameSchema struct {
	GameName    string    `json:"gameName"`
	GameVersion string    `json:"gameVersion"`
	Stats       GameStats `json:"availableGameStats"`
}

// GameStats carries the achievement definitions of a schema. The API also
// publishes raw stat counters here; those are ignored.
type GameStats struct {
	Achievements []AchievementSchema `json:"achievements"`
}

// AchievementSchema is one achievement definition from the game schema.
type AchievementSchema struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Hidden      IntBool `json:"hidden"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconGray    string  `json:"icongray"`
}

// AchievementPercentage is the global completion rate of one achievement.
type AchievementPercentage struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// PlayerAchievement is one achievement's unlock state for a specific player.
type PlayerAchievement struct {
	APIName    string  `json:"apiname"`
	Achieved   IntBool `json:"achieved"`
	UnlockTime int64   `json:"unlocktime"`
}

// Achievement merges the schema definition, the player's unlock state, and
// the global completion rate for one achievement.
type Achievement struct {
	APIName      string  `json:"apiname"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Hidden       bool    `json:"hidden"`
	Achieved     bool    `json:"achieved"`
	UnlockTime   int64   `json:"unlocktime"`
	Percent      float64 `json:"percent"`
	Icon         string  `json:"icon"`
	IconAchieved string  `json:"icon_achieved"`
}

// IntBool decodes the 0/1 integers the Steam API uses where JSON booleans
// would be expected.
type IntBool bool

func (b *IntBool) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = n == 1
	return nil
}

func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}
