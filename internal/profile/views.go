package profile

import (
	"math"

	"matchscope/internal/analysis"
	"matchscope/internal/riot"
	"matchscope/internal/stats"
)

// Dashboard is everything shown for one searched player
type Dashboard struct {
	Account         riot.AccountResponse `json:"account"`
	Summoner        riot.Summoner        `json:"summoner"`
	ProfileIconURL  string               `json:"profileIconUrl"`
	Routing         riot.Routing         `json:"routing"`
	Queue           string               `json:"queue"`
	Ranks           []riot.LeagueEntry   `json:"ranks"`
	SoloQueue       *riot.LeagueEntry    `json:"soloQueue,omitempty"`
	Record          RecordView           `json:"record"`
	Champions       []ChampionView       `json:"champions"`
	Mastery         []stats.MasteryStats `json:"mastery"`
	Matches         []MatchView          `json:"matches"`
	CatalogVersion  string               `json:"catalogVersion"`
	CatalogFallback bool                 `json:"catalogFallback"`
}

// RecordView is the overall record over the filtered matches
type RecordView struct {
	stats.Record
	WinRate string `json:"winRate"`
	KDA     string `json:"kda"`
}

// ChampionView is a champion rollup ready for display
type ChampionView struct {
	stats.ChampionRollup
	WinRate string `json:"winRate"`
	KDA     string `json:"kda"`
}

// MatchView is one match with every participant resolved and scored
type MatchView struct {
	MatchID      string            `json:"matchId"`
	QueueID      int               `json:"queueId"`
	QueueName    string            `json:"queueName"`
	GameMode     string            `json:"gameMode"`
	GameCreation int64             `json:"gameCreation"`
	Duration     string            `json:"duration"`
	Win          bool              `json:"win"`
	SelfIndex    int               `json:"selfIndex"` // -1 when the tracked player is absent
	MVPPUUID     string            `json:"mvpPuuid"`
	Participants []ParticipantView `json:"participants"`
}

// ParticipantView is one player's line in a match
type ParticipantView struct {
	PUUID        string    `json:"puuid"`
	GameName     string    `json:"gameName"`
	TagLine      string    `json:"tagLine"`
	ChampionID   int       `json:"championId"`
	ChampionName string    `json:"championName"`
	ChampionIcon string    `json:"championIcon"`
	ChampLevel   int       `json:"champLevel"`
	TeamID       int       `json:"teamId"`
	Position     string    `json:"position,omitempty"`
	Win          bool      `json:"win"`
	Kills        int       `json:"kills"`
	Deaths       int       `json:"deaths"`
	Assists      int       `json:"assists"`
	KDA          string    `json:"kda"`
	CreepScore   int       `json:"creepScore"`
	Damage       int       `json:"damage"`
	Gold         int       `json:"gold"`
	VisionScore  int       `json:"visionScore"`
	Spells       [2]string `json:"spells"`
	SpellIcons   [2]string `json:"spellIcons"`
	Items        [7]string `json:"items"` // icon URLs, "" for empty slots
	Score        float64   `json:"score"`
	TeamRank     int       `json:"teamRank"`
	MVP          bool      `json:"mvp"`
	Self         bool      `json:"self"`
}

func (s *Service) buildDashboard(
	account *riot.AccountResponse,
	summoner *riot.Summoner,
	routing riot.Routing,
	filter stats.QueueFilter,
	ranks []riot.LeagueEntry,
	masteries []riot.MasteryEntry,
	recent []riot.Match,
) *Dashboard {
	if ranks == nil {
		ranks = []riot.LeagueEntry{}
	}

	rollups := stats.Aggregate(recent, account.PUUID, filter)
	champions := make([]ChampionView, len(rollups))
	for i, r := range rollups {
		champions[i] = ChampionView{
			ChampionRollup: r,
			WinRate:        stats.FormatWinRate(r.Wins, r.Losses),
			KDA:            stats.FormatKDA(r.Kills, r.Deaths, r.Assists),
		}
	}

	total := stats.Totals(rollups)

	filtered := stats.FilterMatches(recent, filter)
	views := make([]MatchView, len(filtered))
	for i := range filtered {
		views[i] = BuildMatchView(&filtered[i], account.PUUID, s.gameData)
	}

	dash := &Dashboard{
		Account:        *account,
		Summoner:       *summoner,
		ProfileIconURL: s.gameData.ProfileIconURL(summoner.ProfileIconID),
		Routing:        routing,
		Queue:          filter.String(),
		Ranks:          ranks,
		Record: RecordView{
			Record:  total,
			WinRate: stats.FormatWinRate(total.Wins, total.Losses),
			KDA:     stats.FormatKDA(total.Kills, total.Deaths, total.Assists),
		},
		Champions:       champions,
		Mastery:         stats.JoinMastery(masteries, rollups, s.gameData.ResolveChampion),
		Matches:         views,
		CatalogVersion:  s.gameData.Version(),
		CatalogFallback: s.gameData.IsFallback(),
	}
	if solo, ok := riot.SoloQueue(ranks); ok {
		dash.SoloQueue = solo
	}
	return dash
}

// BuildMatchView resolves and scores every participant of m. trackedPUUID
// marks the searched player's row; it may be empty.
func BuildMatchView(m *riot.Match, trackedPUUID string, gd GameData) MatchView {
	result := analysis.AnalyzeMatch(m)

	view := MatchView{
		MatchID:      m.Metadata.MatchID,
		QueueID:      m.Info.QueueID,
		QueueName:    stats.QueueName(m.Info.QueueID, m.Info.GameMode),
		GameMode:     m.Info.GameMode,
		GameCreation: m.Info.GameCreation,
		Duration:     stats.FormatDuration(m.Info.GameDuration),
		SelfIndex:    -1,
		MVPPUUID:     result.MVPPUUID,
		Participants: make([]ParticipantView, len(m.Info.Participants)),
	}

	for i := range m.Info.Participants {
		p := &m.Info.Participants[i]

		name := p.ChampionName
		if name == "" {
			name = gd.ResolveChampion(p.ChampionID)
		}

		pv := ParticipantView{
			PUUID:        p.PUUID,
			GameName:     p.RiotIDGameName,
			TagLine:      p.RiotIDTagline,
			ChampionID:   p.ChampionID,
			ChampionName: name,
			ChampionIcon: gd.ChampionIconURL(p.ChampionID),
			ChampLevel:   p.ChampLevel,
			TeamID:       p.TeamID,
			Position:     p.TeamPosition,
			Win:          p.Win,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
			KDA:          stats.FormatKDA(p.Kills, p.Deaths, p.Assists),
			CreepScore:   p.CreepScore(),
			Damage:       p.TotalDamageDealtToChampions,
			Gold:         p.GoldEarned,
			VisionScore:  p.VisionScore,
			Spells:       [2]string{gd.ResolveSpell(p.Summoner1ID), gd.ResolveSpell(p.Summoner2ID)},
			SpellIcons:   [2]string{gd.SpellIconURL(p.Summoner1ID), gd.SpellIconURL(p.Summoner2ID)},
			Score:        math.Round(result.Scores[i]*10) / 10,
			TeamRank:     result.Ranks[i],
			MVP:          result.IsMVP(i),
		}
		for slot, id := range p.Items() {
			pv.Items[slot] = gd.ItemIconURL(id)
		}

		if trackedPUUID != "" && p.PUUID == trackedPUUID && view.SelfIndex < 0 {
			pv.Self = true
			view.SelfIndex = i
			view.Win = p.Win
		}
		view.Participants[i] = pv
	}

	return view
}
