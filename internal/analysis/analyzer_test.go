package analysis

import (
	"fmt"
	"testing"

	"matchscope/internal/riot"
)

func TestAnalyze_WorkedExample(t *testing.T) {
	participants := []riot.Participant{
		{PUUID: "A", TeamID: riot.TeamBlue, Kills: 10, Deaths: 2, Assists: 5, TotalDamageDealtToChampions: 20000, Win: true},
		{PUUID: "B", TeamID: riot.TeamRed, Kills: 2, Deaths: 8, Assists: 1, TotalDamageDealtToChampions: 5000, Win: false},
	}

	got := Analyze(participants)

	// 7.5*20 + 20000/500 + 15 + 30 - 2*5
	if got.Scores[0] != 225 {
		t.Errorf("score A = %v, want 225", got.Scores[0])
	}
	// 0.375*20 + 5000/500 + 3 - 8*5
	if got.Scores[1] != -19.5 {
		t.Errorf("score B = %v, want -19.5", got.Scores[1])
	}
	if got.MVPPUUID != "A" || got.MVPIndex != 0 {
		t.Errorf("MVP = %q (%d), want A (0)", got.MVPPUUID, got.MVPIndex)
	}
	if got.Ranks[0] != 1 {
		t.Errorf("rank A = %d, want 1", got.Ranks[0])
	}
}

func TestScore_AllTerms(t *testing.T) {
	p := riot.Participant{
		Kills: 4, Deaths: 0, Assists: 6,
		TotalDamageDealtToChampions: 1000,
		TotalMinionsKilled:          140,
		NeutralMinionsKilled:        10,
		VisionScore:                 16,
		ObjectivesStolen:            1,
		ObjectivesStolenAssists:     1,
	}
	// 10*20 + 2 + 10 + 2 + 80 + 40 + 10
	if got := Score(&p); got != 344 {
		t.Errorf("Score() = %v, want 344", got)
	}
}

func TestAnalyze_FirstMaxTieBreak(t *testing.T) {
	same := riot.Participant{Kills: 5, Deaths: 1, Assists: 5, TeamID: riot.TeamBlue}

	participants := make([]riot.Participant, 10)
	for i := range participants {
		participants[i] = riot.Participant{PUUID: fmt.Sprintf("p%d", i), TeamID: riot.TeamRed, Deaths: 3}
	}
	participants[3] = same
	participants[3].PUUID = "first"
	participants[7] = same
	participants[7].PUUID = "second"

	got := Analyze(participants)
	if got.MVPPUUID != "first" || got.MVPIndex != 3 {
		t.Errorf("MVP = %q (%d), want first (3)", got.MVPPUUID, got.MVPIndex)
	}
	if !got.IsMVP(3) || got.IsMVP(7) {
		t.Error("IsMVP disagrees with MVPIndex")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	participants := fullMatch()

	first := Analyze(participants)
	for i := 0; i < 50; i++ {
		again := Analyze(participants)
		if again.MVPPUUID != first.MVPPUUID {
			t.Fatalf("run %d MVP = %q, want %q", i, again.MVPPUUID, first.MVPPUUID)
		}
		for j := range first.Ranks {
			if again.Ranks[j] != first.Ranks[j] {
				t.Fatalf("run %d ranks = %v, want %v", i, again.Ranks, first.Ranks)
			}
		}
	}
}

func TestTeamRanks_Totality(t *testing.T) {
	participants := fullMatch()
	ranks := TeamRanks(participants)

	seen := map[int]map[int]bool{riot.TeamBlue: {}, riot.TeamRed: {}}
	for i, p := range participants {
		r := ranks[i]
		if r < 1 || r > 5 {
			t.Fatalf("rank %d out of range for %s", r, p.PUUID)
		}
		if seen[p.TeamID][r] {
			t.Fatalf("rank %d assigned twice in team %d", r, p.TeamID)
		}
		seen[p.TeamID][r] = true
	}
	for team, rs := range seen {
		if len(rs) != 5 {
			t.Errorf("team %d ranks = %v, want {1..5}", team, rs)
		}
	}
}

func TestTeamRanks_StableOnTies(t *testing.T) {
	participants := []riot.Participant{
		{PUUID: "a", TeamID: riot.TeamBlue, Kills: 2, Deaths: 1},
		{PUUID: "b", TeamID: riot.TeamRed, Kills: 9, Deaths: 1},
		{PUUID: "c", TeamID: riot.TeamBlue, Kills: 2, Deaths: 1},
		{PUUID: "d", TeamID: riot.TeamBlue, Kills: 8, Deaths: 1},
	}

	got := TeamRanks(participants)
	want := []int{2, 1, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TeamRanks() = %v, want %v", got, want)
		}
	}
}

func TestAnalyze_RankIndependentOfMVP(t *testing.T) {
	// b has the better KDA, a has the better score
	participants := []riot.Participant{
		{PUUID: "a", TeamID: riot.TeamBlue, Kills: 10, Deaths: 5, Assists: 10, TotalDamageDealtToChampions: 60000, Win: true},
		{PUUID: "b", TeamID: riot.TeamBlue, Kills: 1, Deaths: 0, Assists: 5, Win: true},
	}

	got := Analyze(participants)
	if got.MVPPUUID != "a" {
		t.Errorf("MVP = %q, want a", got.MVPPUUID)
	}
	if got.Ranks[0] != 2 || got.Ranks[1] != 1 {
		t.Errorf("ranks = %v, want [2 1]", got.Ranks)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	got := Analyze(nil)
	if got.MVPIndex != -1 || got.MVPPUUID != "" {
		t.Errorf("empty analysis = %+v", got)
	}
	if len(got.Scores) != 0 || len(got.Ranks) != 0 {
		t.Errorf("empty analysis has results: %+v", got)
	}
	if got.IsMVP(0) {
		t.Error("IsMVP(0) on empty analysis")
	}
}

func TestAnalyzeMatch(t *testing.T) {
	m := &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: "BR1_1"},
		Info:     riot.MatchInfo{Participants: fullMatch()},
	}
	got := AnalyzeMatch(m)
	if got.MatchID != "BR1_1" || len(got.Scores) != 10 {
		t.Errorf("AnalyzeMatch() = %+v", got)
	}
}

func fullMatch() []riot.Participant {
	kda := [][3]int{
		{5, 2, 7}, {1, 6, 3}, {8, 1, 4}, {3, 3, 3}, {0, 4, 12},
		{7, 5, 2}, {2, 2, 2}, {4, 4, 4}, {9, 3, 1}, {1, 1, 1},
	}
	out := make([]riot.Participant, len(kda))
	for i, s := range kda {
		team := riot.TeamBlue
		if i >= 5 {
			team = riot.TeamRed
		}
		out[i] = riot.Participant{
			PUUID:   fmt.Sprintf("p%d", i),
			TeamID:  team,
			Kills:   s[0],
			Deaths:  s[1],
			Assists: s[2],
			Win:     team == riot.TeamBlue,
		}
		out[i].TotalDamageDealtToChampions = 10000 + i*1000
	}
	return out
}
