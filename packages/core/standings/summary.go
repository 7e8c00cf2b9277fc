package standings

import (
	"cuebook-api/packages/core/models"
)

// Summary counts groups, players and matches of a tournament and derives its
// status from the number of completed matches.
func Summary(t models.Tournament) models.Summary {
	completed := 0
	for _, m := range t.Matches {
		if m.IsCompleted() {
			completed++
		}
	}

	return models.Summary{
		TotalGroups:      len(t.Groups),
		TotalPlayers:     len(t.PlayerIDs()),
		TotalMatches:     len(t.Matches),
		CompletedMatches: completed,
		Status:           status(completed, len(t.Matches)),
	}
}

func status(completed, total int) models.TournamentStatus {
	switch {
	case completed == 0:
		return models.TournamentUpcoming
	case completed < total:
		return models.TournamentOngoing
	}
	return models.TournamentCompleted
}

// AllCompleted reports whether the tournament has matches and all of them
// are completed.
func AllCompleted(t models.Tournament) bool {
	if len(t.Matches) == 0 {
		return false
	}
	for _, m := range t.Matches {
		if !m.IsCompleted() {
			return false
		}
	}
	return true
}
