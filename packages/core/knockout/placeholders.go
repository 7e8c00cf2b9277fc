package knockout

import (
	"fmt"

	"cuebook-api/packages/core/models"
)

// Slot is one seat of a bracket match. PlayerID is set once the seat is
// known; until then Label describes where the player will come from and
// ProjectedPlayerID may name the qualifier currently holding that seed.
type Slot struct {
	PlayerID          *string `json:"player_id,omitempty"`
	Label             string  `json:"label,omitempty"`
	ProjectedPlayerID *string `json:"projected_player_id,omitempty"`
}

type BracketMatch struct {
	Match models.Match `json:"match"`
	Slot1 Slot         `json:"slot1"`
	Slot2 Slot         `json:"slot2"`
}

// Label returns the display text for an undetermined seat. Quarter-final
// seats come from the selection rules, later rounds from the standard
// bracket feed: semi-final n takes the winners of quarter-finals 2n-1 and
// 2n, the final takes the winners of both semi-finals.
func Label(stage models.Stage, order, slot int, rules []models.QuarterFinalSelectionRule) string {
	switch stage {
	case models.StageQuarterFinal:
		for _, r := range rules {
			if r.MatchOrder == order && r.Slot == slot {
				return fmt.Sprintf("Quarter-finalist #%d", r.Seed)
			}
		}
	case models.StageSemiFinal:
		if order > 0 {
			return fmt.Sprintf("Winner QF #%d", 2*(order-1)+slot)
		}
	case models.StageFinal:
		return fmt.Sprintf("Winner SF #%d", slot)
	}
	return "TBD"
}

// Bracket decorates every knockout round with seat labels. qualifiers may be
// nil; when given, quarter-final seats also carry the projected player.
func Bracket(rounds []Round, rules []models.QuarterFinalSelectionRule, qualifiers []Qualifier) []BracketMatch {
	bySeed := make(map[int]string, len(qualifiers))
	for _, q := range qualifiers {
		bySeed[q.Seed] = q.PlayerID
	}

	slot := func(m models.Match, n int, playerID *string) Slot {
		if playerID != nil {
			return Slot{PlayerID: playerID}
		}
		s := Slot{Label: Label(m.Stage, m.Order, n, rules)}
		if m.Stage == models.StageQuarterFinal {
			for _, r := range rules {
				if r.MatchOrder == m.Order && r.Slot == n {
					if id, ok := bySeed[r.Seed]; ok {
						s.ProjectedPlayerID = &id
					}
				}
			}
		}
		return s
	}

	var out []BracketMatch
	for _, round := range rounds {
		for _, m := range round.Matches {
			out = append(out, BracketMatch{
				Match: m,
				Slot1: slot(m, 1, m.Player1ID),
				Slot2: slot(m, 2, m.Player2ID),
			})
		}
	}
	return out
}
