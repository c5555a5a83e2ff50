package stats

import "matchscope/internal/riot"

// MasteryStats joins a champion mastery entry with the player's recent
// results on that champion
type MasteryStats struct {
	ChampionID     int     `json:"championId"`
	ChampionName   string  `json:"championName"`
	ChampionLevel  int     `json:"championLevel"`
	ChampionPoints int     `json:"championPoints"`
	LastPlayTime   int64   `json:"lastPlayTime"`
	Games          int     `json:"games"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	WinRate        float64 `json:"winRate"`
	KDA            string  `json:"kda"`
}

// JoinMastery enriches mastery entries with resolved names and the matching
// rollup counters. Entries keep their upstream order (highest points first).
func JoinMastery(entries []riot.MasteryEntry, rollups []ChampionRollup, resolve func(int) string) []MasteryStats {
	byName := make(map[string]ChampionRollup, len(rollups))
	for _, r := range rollups {
		byName[r.ChampionName] = r
	}

	out := make([]MasteryStats, 0, len(entries))
	for _, e := range entries {
		name := resolve(e.ChampionID)
		ms := MasteryStats{
			ChampionID:     e.ChampionID,
			ChampionName:   name,
			ChampionLevel:  e.ChampionLevel,
			ChampionPoints: e.ChampionPoints,
			LastPlayTime:   e.LastPlayTime,
		}
		if r, ok := byName[name]; ok {
			ms.Games = r.Games
			ms.Wins = r.Wins
			ms.Losses = r.Losses
			ms.WinRate = r.WinRate()
			ms.KDA = FormatKDA(r.Kills, r.Deaths, r.Assists)
		}
		out = append(out, ms)
	}
	return out
}
