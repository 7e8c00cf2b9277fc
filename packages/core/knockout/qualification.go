package knockout

import (
	"errors"
	"fmt"
	"sort"

	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/standings"
)

var ErrInvalidRule = errors.New("invalid advancement rule")

// Qualifier is a player who leaves the group stage. Seeds are numbered from
// 1 in the order the rules produce them.
type Qualifier struct {
	Seed     int                    `json:"seed"`
	PlayerID string                 `json:"player_id"`
	GroupID  string                 `json:"group_id"`
	Position int                    `json:"position"`
	Rule     models.AdvancementKind `json:"rule"`
}

// Qualifiers applies rules in order to the group tables. A player selected
// by an earlier rule is not selected twice.
func Qualifiers(groups []models.GroupStandings, rules []models.AdvancementRule) ([]Qualifier, error) {
	var out []Qualifier
	taken := make(map[string]bool)

	add := func(s models.Standing, groupID string, kind models.AdvancementKind) {
		if taken[s.PlayerID] {
			return
		}
		taken[s.PlayerID] = true
		out = append(out, Qualifier{
			Seed:     len(out) + 1,
			PlayerID: s.PlayerID,
			GroupID:  groupID,
			Position: s.Position,
			Rule:     kind,
		})
	}

	for _, rule := range rules {
		if rule.Count <= 0 {
			return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRule, rule.Count)
		}

		switch rule.Kind {
		case models.AdvanceTopPerGroup:
			for pos := 1; pos <= rule.Count; pos++ {
				for _, g := range groups {
					if pos <= len(g.Standings) {
						add(g.Standings[pos-1], g.GroupID, rule.Kind)
					}
				}
			}

		case models.AdvanceBestAcrossGroups:
			if rule.Position <= 0 {
				return nil, fmt.Errorf("%w: position must be positive, got %d", ErrInvalidRule, rule.Position)
			}
			type candidate struct {
				standing models.Standing
				groupID  string
			}
			var pool []candidate
			for _, g := range groups {
				if rule.Position <= len(g.Standings) {
					s := g.Standings[rule.Position-1]
					if !taken[s.PlayerID] {
						pool = append(pool, candidate{standing: s, groupID: g.GroupID})
					}
				}
			}
			sort.SliceStable(pool, func(i, j int) bool {
				return standings.CrossGroupComparator(pool[i].standing, pool[j].standing) < 0
			})
			for i := 0; i < rule.Count && i < len(pool); i++ {
				add(pool[i].standing, pool[i].groupID, rule.Kind)
			}

		default:
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, rule.Kind)
		}
	}

	return out, nil
}
