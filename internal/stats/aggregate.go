package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"matchscope/internal/riot"
)

// QueueFilter selects matches by queue id. QueueAll disables filtering.
type QueueFilter int

// QueueAll is the "all" sentinel; no real queue id is negative
const QueueAll QueueFilter = -1

// Common queue ids
const (
	QueueNormalDraft = 400
	QueueRankedSolo  = 420
	QueueNormalBlind = 430
	QueueRankedFlex  = 440
	QueueARAM        = 450
	QueueArena       = 1700
)

// ParseQueueFilter accepts "", "all" or a decimal queue id
func ParseQueueFilter(s string) (QueueFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return QueueAll, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return QueueAll, fmt.Errorf("invalid queue filter %q", s)
	}
	return QueueFilter(id), nil
}

func (q QueueFilter) String() string {
	if q == QueueAll {
		return "all"
	}
	return strconv.Itoa(int(q))
}

// Matches reports whether a match on queueID passes the filter
func (q QueueFilter) Matches(queueID int) bool {
	return q == QueueAll || int(q) == queueID
}

// ChampionRollup accumulates one champion's results for the tracked player
type ChampionRollup struct {
	ChampionName string `json:"championName"`
	Games        int    `json:"games"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	LastPlayed   int64  `json:"lastPlayed"` // epoch millis of the latest game
}

// WinRate returns the rollup's win percentage rounded to one decimal
func (r ChampionRollup) WinRate() float64 {
	return WinRate(r.Wins, r.Losses)
}

// KDA returns the combined (kills+assists)/deaths over all games
func (r ChampionRollup) KDA() float64 {
	return riot.KDA(r.Kills, r.Deaths, r.Assists)
}

// FilterMatches keeps the matches that pass filter, preserving order
func FilterMatches(matches []riot.Match, filter QueueFilter) []riot.Match {
	if filter == QueueAll {
		return matches
	}
	out := make([]riot.Match, 0, len(matches))
	for _, m := range matches {
		if filter.Matches(m.Info.QueueID) {
			out = append(out, m)
		}
	}
	return out
}

// Aggregate folds the tracked player's matches into per-champion rollups,
// most recently played champion first. Matches the player is absent from
// are skipped.
func Aggregate(matches []riot.Match, trackedPUUID string, filter QueueFilter) []ChampionRollup {
	index := make(map[string]int)
	rollups := make([]ChampionRollup, 0)

	for i := range matches {
		m := &matches[i]
		if !filter.Matches(m.Info.QueueID) {
			continue
		}
		p, ok := m.FindParticipant(trackedPUUID)
		if !ok {
			continue
		}

		idx, seen := index[p.ChampionName]
		if !seen {
			idx = len(rollups)
			index[p.ChampionName] = idx
			rollups = append(rollups, ChampionRollup{
				ChampionName: p.ChampionName,
				LastPlayed:   m.Info.GameCreation,
			})
		}

		r := &rollups[idx]
		r.Games++
		r.Kills += p.Kills
		r.Deaths += p.Deaths
		r.Assists += p.Assists
		if p.Win {
			r.Wins++
		} else {
			r.Losses++
		}
		if m.Info.GameCreation > r.LastPlayed {
			r.LastPlayed = m.Info.GameCreation
		}
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].LastPlayed > rollups[j].LastPlayed
	})
	return rollups
}

// Record is an overall win/loss and K/D/A tally
type Record struct {
	Games   int `json:"games"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`
}

// Totals sums a set of rollups
func Totals(rollups []ChampionRollup) Record {
	var rec Record
	for _, r := range rollups {
		rec.Games += r.Games
		rec.Wins += r.Wins
		rec.Losses += r.Losses
		rec.Kills += r.Kills
		rec.Deaths += r.Deaths
		rec.Assists += r.Assists
	}
	return rec
}

// WinRate returns the record's win percentage rounded to one decimal
func (r Record) WinRate() float64 {
	return WinRate(r.Wins, r.Losses)
}

// WinRate returns wins/(wins+losses)*100 rounded to one decimal, or 0 when
// no games were played
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*1000) / 10
}

// FormatWinRate renders WinRate with one decimal ("0.0" for no games)
func FormatWinRate(wins, losses int) string {
	return strconv.FormatFloat(WinRate(wins, losses), 'f', 1, 64)
}

// FormatKDA renders a KDA with two decimals when the player died and one
// decimal for a deathless game
func FormatKDA(kills, deaths, assists int) string {
	kda := riot.KDA(kills, deaths, assists)
	if deaths > 0 {
		return strconv.FormatFloat(kda, 'f', 2, 64)
	}
	return strconv.FormatFloat(kda, 'f', 1, 64)
}
