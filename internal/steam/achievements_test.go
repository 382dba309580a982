package steam

import (
	"context"
	"net/http"
	"testing"
)

func TestAchievementsMerge(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ISteamUserStats/GetSchemaForGame/v0002/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"game":{"gameName":"Portal","availableGameStats":{"achievements":[
			{"name":"A","displayName":"First","hidden":0,"description":"do the thing","icon":"a.jpg","icongray":"a_gray.jpg"},
			{"name":"B","displayName":"Second","hidden":1,"icon":"b.jpg","icongray":"b_gray.jpg"}
		]}}}`))
	})
	mux.HandleFunc("/ISteamUserStats/GetPlayerAchievements/v0001/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playerstats":{"steamID":"76561","gameName":"Portal","achievements":[
			{"apiname":"A","achieved":1,"unlocktime":1600000000},
			{"apiname":"B","achieved":0,"unlocktime":0}
		]}}`))
	})
	mux.HandleFunc("/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"achievementpercentages":{"achievements":[
			{"name":"A","percent":87.4},
			{"name":"B","percent":3.2}
		]}}`))
	})
	c := newTestClient(t, mux)

	merged, err := c.Achievements(context.Background(), "76561", 400, "")
	if err != nil {
		t.Fatalf("Achievements returned error: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("got %d achievements, want 2", len(merged))
	}

	first := merged[0]
	if first.APIName != "A" || first.Name != "First" || !first.Achieved {
		t.Fatalf("unexpected first achievement: %+v", first)
	}
	if first.UnlockTime != 1600000000 || first.Percent != 87.4 {
		t.Fatalf("unlock/percent merged wrong: %+v", first)
	}
	if first.Icon != "a_gray.jpg" || first.IconAchieved != "a.jpg" {
		t.Fatalf("icons merged wrong: %+v", first)
	}

	second := merged[1]
	if second.Achieved || !second.Hidden || second.Percent != 3.2 {
		t.Fatalf("unexpected second achievement: %+v", second)
	}
}

func TestAchievementsNoSchema(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"game":{}}`))
	}))

	merged, err := c.Achievements(context.Background(), "76561", 1, "")
	if err != nil {
		t.Fatalf("Achievements returned error: %v", err)
	}
	if merged != nil {
		t.Fatalf("expected nil for a game without achievements, got %v", merged)
	}
}
