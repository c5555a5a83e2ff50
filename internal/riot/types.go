package riot

import "fmt"

// Team IDs used by the match-v5 API
const (
	TeamBlue = 100
	TeamRed  = 200
)

// AccountResponse represents the response from /riot/account/v1/accounts/by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner represents the response from /lol/summoner/v4/summoners/by-puuid
type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

// Match represents the response from /lol/match/v5/matches/{matchId}
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"` // epoch millis
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
	Teams        []Team        `json:"teams"`
}

type Team struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// Participant is one player's record within a match
type Participant struct {
	PUUID          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ProfileIcon    int    `json:"profileIcon"`

	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	ChampLevel   int    `json:"champLevel"`
	TeamID       int    `json:"teamId"`
	TeamPosition string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Win          bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
	VisionScore                 int `json:"visionScore"`
	GoldEarned                  int `json:"goldEarned"`
	ObjectivesStolen            int `json:"objectivesStolen"`
	ObjectivesStolenAssists     int `json:"objectivesStolenAssists"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"` // Trinket

	Summoner1ID int `json:"summoner1Id"`
	Summoner2ID int `json:"summoner2Id"`
}

// LeagueEntry represents a ranked league entry from /lol/league/v4/entries/by-puuid
type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier         string `json:"tier"`
	Rank         string `json:"rank"` // I, II, III, IV
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}

// Queue types reported by the league endpoint
const (
	QueueTypeSolo = "RANKED_SOLO_5x5"
	QueueTypeFlex = "RANKED_FLEX_SR"
)

// MasteryEntry represents one record from the champion-mastery top endpoint
type MasteryEntry struct {
	PUUID          string `json:"puuid"`
	ChampionID     int    `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
	LastPlayTime   int64  `json:"lastPlayTime"`
}

// Validate reports whether the record is usable at all. It does not enforce
// a 10 player lobby because some queues (Arena) field more players.
func (m *Match) Validate() error {
	if m == nil {
		return fmt.Errorf("match is nil")
	}
	if m.Metadata.MatchID == "" {
		return fmt.Errorf("match metadata missing matchId")
	}
	if len(m.Info.Participants) == 0 {
		return fmt.Errorf("match %s has no participants", m.Metadata.MatchID)
	}
	return nil
}

// FindParticipant returns the participant with the given PUUID
func (m *Match) FindParticipant(puuid string) (*Participant, bool) {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}

// Items returns the six inventory slots followed by the trinket slot
func (p *Participant) Items() [7]int {
	return [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
}

// CreepScore is lane minions plus jungle monsters
func (p *Participant) CreepScore() int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// KDA returns the participant's (kills+assists)/deaths ratio
func (p *Participant) KDA() float64 {
	return KDA(p.Kills, p.Deaths, p.Assists)
}

// KDA computes (kills+assists)/deaths, or kills+assists when deaths is zero
func KDA(kills, deaths, assists int) float64 {
	if deaths > 0 {
		return float64(kills+assists) / float64(deaths)
	}
	return float64(kills + assists)
}

// SoloQueue returns the solo/duo entry from a league list, if present
func SoloQueue(entries []LeagueEntry) (*LeagueEntry, bool) {
	for i := range entries {
		if entries[i].QueueType == QueueTypeSolo {
			return &entries[i], true
		}
	}
	return nil, false
}
