// Package knockout derives the bracket, the champion and the qualifiers of
// the single-elimination stage of a tournament.
package knockout

import (
	"errors"
	"fmt"
	"sort"

	"cuebook-api/packages/core/models"
)

var ErrMultipleFinals = errors.New("tournament has more than one final")

type Round struct {
	Stage   models.Stage   `json:"stage"`
	Matches []models.Match `json:"matches"`
}

type Result struct {
	Champion *string `json:"champion,omitempty"`
	RunnerUp *string `json:"runner_up,omitempty"`
	Rounds   []Round `json:"rounds"`
}

// Resolve orders the knockout matches into rounds and, when the final is
// completed, names the champion and the runner-up. Group stage matches in
// the input are ignored. A tournament without a final yet resolves with no
// champion.
func Resolve(matches []models.Match) (Result, error) {
	var ko []models.Match
	var final *models.Match
	for i := range matches {
		m := matches[i]
		if !m.Stage.IsKnockout() {
			continue
		}
		if m.Stage == models.StageFinal {
			if final != nil {
				return Result{}, ErrMultipleFinals
			}
			final = &matches[i]
		}
		ko = append(ko, m)
	}

	sort.SliceStable(ko, func(i, j int) bool {
		if ko[i].Stage != ko[j].Stage {
			return ko[i].Stage.Rank() < ko[j].Stage.Rank()
		}
		return ko[i].Order < ko[j].Order
	})

	result := Result{Rounds: []Round{}}
	for _, m := range ko {
		n := len(result.Rounds)
		if n == 0 || result.Rounds[n-1].Stage != m.Stage {
			result.Rounds = append(result.Rounds, Round{Stage: m.Stage})
			n++
		}
		result.Rounds[n-1].Matches = append(result.Rounds[n-1].Matches, m)
	}

	if final != nil && final.HasDefinedPlayers() && final.IsCompleted() {
		winner, err := final.Winner()
		if err != nil {
			return Result{}, fmt.Errorf("final: %w", err)
		}
		loser, _ := final.Loser()
		result.Champion = &winner
		result.RunnerUp = &loser
	}

	return result, nil
}
