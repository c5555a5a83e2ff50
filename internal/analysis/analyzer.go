// Package analysis scores the participants of a match, picks its MVP and
// ranks every player within their team.
package analysis

import (
	"sort"

	"matchscope/internal/riot"
)

// Score weights
const (
	kdaWeight          = 20.0
	damageDivisor      = 500.0
	csDivisor          = 15.0
	visionDivisor      = 8.0
	stolenWeight       = 80.0
	stolenAssistWeight = 40.0
	winBonus           = 30.0
	deathPenalty       = 5.0
)

// MatchAnalysis holds per-participant results indexed by the participant's
// position in the analyzed list
type MatchAnalysis struct {
	MatchID  string    `json:"matchId,omitempty"`
	MVPIndex int       `json:"mvpIndex"` // -1 when there are no participants
	MVPPUUID string    `json:"mvpPuuid"`
	Scores   []float64 `json:"scores"`
	Ranks    []int     `json:"ranks"`
}

// IsMVP reports whether the participant at index i is the match MVP
func (a MatchAnalysis) IsMVP(i int) bool {
	return a.MVPIndex >= 0 && i == a.MVPIndex
}

// Score computes the composite performance score of one participant
func Score(p *riot.Participant) float64 {
	kda := riot.KDA(p.Kills, p.Deaths, p.Assists)

	score := kda * kdaWeight
	score += float64(p.TotalDamageDealtToChampions) / damageDivisor
	score += float64(p.TotalMinionsKilled+p.NeutralMinionsKilled) / csDivisor
	score += float64(p.VisionScore) / visionDivisor
	score += float64(p.ObjectivesStolen)*stolenWeight + float64(p.ObjectivesStolenAssists)*stolenAssistWeight
	score += float64(p.Kills + p.Assists)
	if p.Win {
		score += winBonus
	}
	score -= float64(p.Deaths) * deathPenalty
	return score
}

// Analyze scores every participant and selects the MVP. Ties on the top
// score go to the participant listed first.
func Analyze(participants []riot.Participant) MatchAnalysis {
	result := MatchAnalysis{
		MVPIndex: -1,
		Scores:   make([]float64, len(participants)),
		Ranks:    TeamRanks(participants),
	}

	for i := range participants {
		s := Score(&participants[i])
		result.Scores[i] = s
		if result.MVPIndex < 0 || s > result.Scores[result.MVPIndex] {
			result.MVPIndex = i
		}
	}

	if result.MVPIndex >= 0 {
		result.MVPPUUID = participants[result.MVPIndex].PUUID
	}
	return result
}

// AnalyzeMatch runs Analyze over a match record
func AnalyzeMatch(m *riot.Match) MatchAnalysis {
	a := Analyze(m.Info.Participants)
	a.MatchID = m.Metadata.MatchID
	return a
}

// TeamRanks ranks participants within their team by KDA, highest first.
// Equal KDAs keep their listed order. The result is indexed like the input.
func TeamRanks(participants []riot.Participant) []int {
	ranks := make([]int, len(participants))

	teams := make(map[int][]int)
	var order []int
	for i, p := range participants {
		if _, ok := teams[p.TeamID]; !ok {
			order = append(order, p.TeamID)
		}
		teams[p.TeamID] = append(teams[p.TeamID], i)
	}

	for _, teamID := range order {
		members := teams[teamID]
		sort.SliceStable(members, func(a, b int) bool {
			pa, pb := &participants[members[a]], &participants[members[b]]
			return pa.KDA() > pb.KDA()
		})
		for pos, idx := range members {
			ranks[idx] = pos + 1
		}
	}
	return ranks
}
