package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/store"
)

func TestLeaderboard(t *testing.T) {
	svc := NewPlayerService(fixtureReader(t), 1)

	res, err := svc.GetAllPlayers(context.Background(), 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 12 || res.TotalPages != 3 || len(res.Data) != 5 {
		t.Fatalf("page = total %d pages %d rows %d", res.Total, res.TotalPages, len(res.Data))
	}

	want := []struct {
		id         string
		rank, prev int
	}{
		{"p01", 1, 1},
		{"p02", 2, 3},
		{"p06", 3, 2},
		{"p09", 4, 4},
	}
	for i, w := range want {
		row := res.Data[i]
		if row.Player.ID != w.id || row.Rank != w.rank || row.PreviousRank != w.prev || row.RankDelta != w.prev-w.rank {
			t.Errorf("row %d = %s rank %d prev %d delta %d", i, row.Player.ID, row.Rank, row.PreviousRank, row.RankDelta)
		}
	}
	if math.Abs(res.Data[0].Rating-1574.5352377213887) > 1e-6 {
		t.Errorf("p01 rating = %v", res.Data[0].Rating)
	}

	last, err := svc.GetAllPlayers(context.Background(), 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(last.Data) != 0 {
		t.Errorf("page past the end has %d rows", len(last.Data))
	}
}

func TestPlayerStats(t *testing.T) {
	svc := NewPlayerService(fixtureReader(t), 1)

	stats, err := svc.GetPlayerStats(context.Background(), "p02")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Played != 6 || stats.Wins != 4 || stats.Losses != 2 || stats.RacksWon != 35 || stats.RacksLost != 31 {
		t.Errorf("p02 stats = %+v", stats)
	}

	if _, err := svc.GetPlayerStats(context.Background(), "p99"); !errors.Is(err, store.ErrPlayerNotFound) {
		t.Errorf("err = %v, want ErrPlayerNotFound", err)
	}
}

func TestEloHistory(t *testing.T) {
	svc := NewPlayerService(fixtureReader(t), 1)

	history, err := svc.GetEloHistory(context.Background(), "p09")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d changes", len(history))
	}
	h := history[0]
	if h.MatchID != "autumn-gx1" || !h.Won || h.EloBefore != 1500 || h.EloAfter != 1516 || h.OpponentID != "p10" {
		t.Errorf("change = %+v", h)
	}

	history, err = svc.GetEloHistory(context.Background(), "p01")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 5 || history[4].MatchID != "spring-final" {
		t.Errorf("p01 history has %d changes", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].EloBefore != history[i-1].EloAfter {
			t.Errorf("change %d does not start where %d ended", i, i-1)
		}
	}
}

func TestAchievements(t *testing.T) {
	svc := NewPlayerService(fixtureReader(t), 1)

	cases := map[string]models.AchievementKind{
		"p01": models.AchievementChampion,
		"p02": models.AchievementRunnerUp,
		"p05": models.AchievementSemiFinalist,
		"p03": models.AchievementGroupStage,
	}
	for id, kind := range cases {
		got, err := svc.GetAchievements(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Kind != kind || got[0].TournamentID != "spring-cup-2026" {
			t.Errorf("%s achievements = %+v, want %s", id, got, kind)
		}
	}

	got, err := svc.GetAchievements(context.Background(), "p12")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("p12 only plays an unfinished tournament, got %+v", got)
	}
}

func TestStats(t *testing.T) {
	svc := NewStatsService(fixtureReader(t))

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := models.Stats{
		TotalPlayers:       12,
		TotalTournaments:   2,
		TotalMatches:       31,
		CompletedMatches:   21,
		OngoingTournaments: 1,
	}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
