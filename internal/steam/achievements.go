package steam

import "context"

// Achievements returns the merged achievement view for one player and game:
// schema definitions joined with the player's unlock state and the global
// completion rate, keyed by the achievement's API name. Returns nil when the
// game publishes no achievements.
func (c *Client) Achievements(ctx context.Context, steamID string, appID AppID, lang string) ([]Achievement, error) {
	schema, err := c.GameSchema(ctx, appID)
	if err != nil {
		return nil, err
	}
	if schema == nil || len(schema.Stats.Achievements) == 0 {
		return nil, nil
	}

	unlocks, err := c.PlayerAchievements(ctx, steamID, appID, lang)
	if err != nil {
		return nil, err
	}
	unlockByName := make(map[string]PlayerAchievement, len(unlocks))
	for _, u := range unlocks {
		unlockByName[u.APIName] = u
	}

	percents, err := c.AchievementPercentages(ctx, appID)
	if err != nil {
		return nil, err
	}
	percentByName := make(map[string]float64, len(percents))
	for _, p := range percents {
		percentByName[p.Name] = p.Percent
	}

	merged := make([]Achievement, 0, len(schema.Stats.Achievements))
	for _, def := range schema.Stats.Achievements {
		u := unlockByName[def.Name]
		merged = append(merged, Achievement{
			APIName:      def.Name,
			Name:         def.DisplayName,
			Description:  def.Description,
			Hidden:       bool(def.Hidden),
			Achieved:     bool(u.Achieved),
			UnlockTime:   u.UnlockTime,
			Percent:      percentByName[def.Name],
			Icon:         def.IconGray,
			IconAchieved: def.Icon,
		})
	}
	return merged, nil
}
