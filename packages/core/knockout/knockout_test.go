package knockout

import (
	"errors"
	"testing"

	"cuebook-api/packages/core/models"
)

func ko(id string, stage models.Stage, order int, p1, p2 string, scores ...int) models.Match {
	m := models.Match{ID: id, Stage: stage, Order: order}
	if p1 != "" {
		m.Player1ID = &p1
	}
	if p2 != "" {
		m.Player2ID = &p2
	}
	if len(scores) == 2 {
		m.Score1 = &scores[0]
		m.Score2 = &scores[1]
	}
	return m
}

func TestResolveWithoutFinal(t *testing.T) {
	res, err := Resolve([]models.Match{
		ko("qf2", models.StageQuarterFinal, 2, "C", "D", 7, 3),
		ko("qf1", models.StageQuarterFinal, 1, "A", "B"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Champion != nil || res.RunnerUp != nil {
		t.Errorf("champion %v runner-up %v, want none", res.Champion, res.RunnerUp)
	}
	if len(res.Rounds) != 1 || res.Rounds[0].Matches[0].ID != "qf1" {
		t.Errorf("rounds = %+v", res.Rounds)
	}
}

func TestResolveCompletedFinal(t *testing.T) {
	res, err := Resolve([]models.Match{
		ko("f", models.StageFinal, 1, "A", "C", 11, 6),
		ko("sf2", models.StageSemiFinal, 2, "C", "D", 9, 1),
		ko("sf1", models.StageSemiFinal, 1, "A", "B", 9, 4),
		{ID: "g", Stage: models.StageGroup},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Champion == nil || *res.Champion != "A" {
		t.Errorf("champion = %v, want A", res.Champion)
	}
	if res.RunnerUp == nil || *res.RunnerUp != "C" {
		t.Errorf("runner-up = %v, want C", res.RunnerUp)
	}
	if len(res.Rounds) != 2 || res.Rounds[0].Stage != models.StageSemiFinal || res.Rounds[1].Stage != models.StageFinal {
		t.Fatalf("rounds = %+v", res.Rounds)
	}
	if res.Rounds[0].Matches[0].ID != "sf1" || res.Rounds[0].Matches[1].ID != "sf2" {
		t.Errorf("semi-finals out of order: %+v", res.Rounds[0].Matches)
	}
}

func TestResolveUnfinishedFinal(t *testing.T) {
	res, err := Resolve([]models.Match{ko("f", models.StageFinal, 1, "A", "C", 10, 6)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Champion != nil {
		t.Errorf("champion = %v before the final ended", *res.Champion)
	}
}

func TestResolveRejectsBadFinals(t *testing.T) {
	_, err := Resolve([]models.Match{
		ko("f1", models.StageFinal, 1, "A", "C"),
		ko("f2", models.StageFinal, 2, "B", "D"),
	})
	if !errors.Is(err, ErrMultipleFinals) {
		t.Errorf("err = %v, want ErrMultipleFinals", err)
	}

	_, err = Resolve([]models.Match{ko("f", models.StageFinal, 1, "A", "C", 11, 11)})
	if !errors.Is(err, models.ErrDrawnMatch) {
		t.Errorf("err = %v, want ErrDrawnMatch", err)
	}
}

func table(groupID string, rows ...models.Standing) models.GroupStandings {
	for i := range rows {
		rows[i].Position = i + 1
		rows[i].GroupID = groupID
	}
	return models.GroupStandings{GroupID: groupID, Standings: rows}
}

func row(id string, points, won, lost int) models.Standing {
	return models.Standing{PlayerID: id, Points: points, MatchesWins: won, MatchesLosses: lost}
}

func TestQualifiersTopPerGroupAndBestThirds(t *testing.T) {
	groups := []models.GroupStandings{
		table("ga", row("A1", 6, 15, 4), row("A2", 4, 12, 9), row("A3", 2, 8, 12), row("A4", 0, 3, 15)),
		table("gb", row("B1", 6, 15, 6), row("B2", 4, 11, 10), row("B3", 2, 9, 12), row("B4", 0, 2, 15)),
		table("gc", row("C1", 4, 14, 8), row("C2", 4, 13, 9), row("C3", 2, 10, 11)),
	}
	rules := []models.AdvancementRule{
		{Kind: models.AdvanceTopPerGroup, Count: 2},
		{Kind: models.AdvanceBestAcrossGroups, Count: 2, Position: 3},
	}

	q, err := Qualifiers(groups, rules)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"A1", "B1", "C1", "A2", "B2", "C2", "C3", "B3"}
	if len(q) != len(want) {
		t.Fatalf("got %d qualifiers: %+v", len(q), q)
	}
	for i, id := range want {
		if q[i].PlayerID != id || q[i].Seed != i+1 {
			t.Errorf("seed %d = %+v, want %s", i+1, q[i], id)
		}
	}
	if q[6].Rule != models.AdvanceBestAcrossGroups || q[6].GroupID != "gc" || q[6].Position != 3 {
		t.Errorf("best third = %+v", q[6])
	}
}

func TestQualifiersInvalidRules(t *testing.T) {
	groups := []models.GroupStandings{table("ga", row("A1", 2, 5, 0))}
	bad := [][]models.AdvancementRule{
		{{Kind: models.AdvanceTopPerGroup, Count: 0}},
		{{Kind: models.AdvanceBestAcrossGroups, Count: 1}},
		{{Kind: "coin-toss", Count: 1}},
	}
	for _, rules := range bad {
		if _, err := Qualifiers(groups, rules); !errors.Is(err, ErrInvalidRule) {
			t.Errorf("%+v: err = %v", rules, err)
		}
	}
}

func TestLabels(t *testing.T) {
	rules := []models.QuarterFinalSelectionRule{
		{MatchOrder: 1, Slot: 1, Seed: 1},
		{MatchOrder: 1, Slot: 2, Seed: 8},
	}
	cases := []struct {
		stage       models.Stage
		order, slot int
		want        string
	}{
		{models.StageQuarterFinal, 1, 1, "Quarter-finalist #1"},
		{models.StageQuarterFinal, 1, 2, "Quarter-finalist #8"},
		{models.StageQuarterFinal, 2, 1, "TBD"},
		{models.StageSemiFinal, 1, 2, "Winner QF #2"},
		{models.StageSemiFinal, 2, 1, "Winner QF #3"},
		{models.StageFinal, 1, 2, "Winner SF #2"},
	}
	for _, tc := range cases {
		if got := Label(tc.stage, tc.order, tc.slot, rules); got != tc.want {
			t.Errorf("Label(%s, %d, %d) = %q, want %q", tc.stage, tc.order, tc.slot, got, tc.want)
		}
	}
}

func TestBracketSlots(t *testing.T) {
	res, err := Resolve([]models.Match{
		ko("qf1", models.StageQuarterFinal, 1, "", ""),
		ko("sf1", models.StageSemiFinal, 1, "A", ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	rules := []models.QuarterFinalSelectionRule{
		{MatchOrder: 1, Slot: 1, Seed: 1},
		{MatchOrder: 1, Slot: 2, Seed: 8},
	}
	qualifiers := []Qualifier{{Seed: 1, PlayerID: "A1"}}

	b := Bracket(res.Rounds, rules, qualifiers)
	if len(b) != 2 {
		t.Fatalf("bracket has %d matches", len(b))
	}

	qf := b[0]
	if qf.Slot1.Label != "Quarter-finalist #1" || qf.Slot1.ProjectedPlayerID == nil || *qf.Slot1.ProjectedPlayerID != "A1" {
		t.Errorf("qf slot1 = %+v", qf.Slot1)
	}
	if qf.Slot2.Label != "Quarter-finalist #8" || qf.Slot2.ProjectedPlayerID != nil {
		t.Errorf("qf slot2 = %+v", qf.Slot2)
	}

	sf := b[1]
	if sf.Slot1.PlayerID == nil || *sf.Slot1.PlayerID != "A" || sf.Slot1.Label != "" {
		t.Errorf("sf slot1 = %+v", sf.Slot1)
	}
	if sf.Slot2.Label != "Winner QF #2" {
		t.Errorf("sf slot2 = %+v", sf.Slot2)
	}
}
