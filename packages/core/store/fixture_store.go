package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"sync"

	"cuebook-api/packages/core/models"
)

// PlayersFile is the fixture holding the player list. Every other .json file
// at the root of the fixture filesystem holds one tournament.
const PlayersFile = "players.json"

// Fixtures is one parsed and validated set of fixture files.
type Fixtures struct {
	Players     []models.Player
	Tournaments []models.Tournament
	playerIndex map[string]int
}

// FixtureStore serves tournaments from static JSON fixtures. Reload swaps
// the whole snapshot at once, so readers never see a half loaded state.
type FixtureStore struct {
	fsys fs.FS
	mu   sync.RWMutex
	snap *Fixtures
}

// NewFixtureStore loads the fixtures from fsys and fails if they are invalid.
func NewFixtureStore(ctx context.Context, fsys fs.FS) (*FixtureStore, error) {
	s := &FixtureStore{fsys: fsys}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload parses the fixtures again. When they fail to parse or validate the
// previous snapshot is kept and the error is returned.
func (s *FixtureStore) Reload(ctx context.Context) error {
	snap, err := LoadFixtures(s.fsys)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	log.Printf("Loaded %d players and %d tournaments from fixtures", len(snap.Players), len(snap.Tournaments))
	return nil
}

func (s *FixtureStore) current() *Fixtures {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *FixtureStore) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	snap := s.current()
	out := make([]models.Tournament, len(snap.Tournaments))
	copy(out, snap.Tournaments)
	return out, nil
}

func (s *FixtureStore) GetTournament(ctx context.Context, idOrSlug string) (*models.Tournament, error) {
	snap := s.current()
	for _, t := range snap.Tournaments {
		if t.ID == idOrSlug || t.Slug == idOrSlug {
			found := t
			return &found, nil
		}
	}
	return nil, ErrTournamentNotFound
}

func (s *FixtureStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	snap := s.current()
	out := make([]models.Player, len(snap.Players))
	copy(out, snap.Players)
	return out, nil
}

func (s *FixtureStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	snap := s.current()
	i, ok := snap.playerIndex[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	p := snap.Players[i]
	return &p, nil
}

// LoadFixtures reads and validates a fixture filesystem.
func LoadFixtures(fsys fs.FS) (*Fixtures, error) {
	raw, err := fs.ReadFile(fsys, PlayersFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", PlayersFile, err)
	}
	var players []models.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("parse %s: %w", PlayersFile, err)
	}

	snap := &Fixtures{
		Players:     players,
		playerIndex: make(map[string]int, len(players)),
	}
	for i, p := range players {
		if p.ID == "" {
			return nil, fmt.Errorf("%s: player #%d has no id", PlayersFile, i+1)
		}
		if _, dup := snap.playerIndex[p.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate player id %s", PlayersFile, p.ID)
		}
		snap.playerIndex[p.ID] = i
	}

	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	seen := make(map[string]bool)
	for _, name := range names {
		if name == PlayersFile {
			continue
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var t models.Tournament
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if t.ID == "" {
			t.ID = name[:len(name)-len(path.Ext(name))]
		}
		if t.Slug == "" {
			t.Slug = t.ID
		}
		if seen[t.ID] || seen[t.Slug] {
			return nil, fmt.Errorf("%s: duplicate tournament %s", name, t.ID)
		}
		seen[t.ID], seen[t.Slug] = true, true

		if err := ValidateTournament(&t, snap.playerIndex); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		snap.Tournaments = append(snap.Tournaments, t)
	}

	sort.SliceStable(snap.Tournaments, func(i, j int) bool {
		return snap.Tournaments[i].StartsAt.After(snap.Tournaments[j].StartsAt)
	})

	return snap, nil
}

// ValidateTournament checks references inside a tournament and fills the
// tournament id of its matches.
func ValidateTournament(t *models.Tournament, players map[string]int) error {
	groups := make(map[string]bool, len(t.Groups))
	for _, g := range t.Groups {
		if g.ID == "" || groups[g.ID] {
			return fmt.Errorf("group %q: missing or duplicate id", g.ID)
		}
		groups[g.ID] = true
		for _, id := range g.PlayerIDs {
			if _, ok := players[id]; !ok {
				return fmt.Errorf("group %s: %w: %s", g.ID, ErrPlayerNotFound, id)
			}
		}
	}

	matchIDs := make(map[string]bool, len(t.Matches))
	for i := range t.Matches {
		m := &t.Matches[i]
		if m.ID == "" || matchIDs[m.ID] {
			return fmt.Errorf("match %q: missing or duplicate id", m.ID)
		}
		matchIDs[m.ID] = true
		m.TournamentID = t.ID

		if !m.Stage.Valid() {
			return fmt.Errorf("match %s: unknown stage %q", m.ID, m.Stage)
		}
		if m.Stage == models.StageGroup && !groups[m.GroupID] {
			return fmt.Errorf("match %s: unknown group %q", m.ID, m.GroupID)
		}
		for _, p := range []*string{m.Player1ID, m.Player2ID} {
			if p == nil {
				continue
			}
			if _, ok := players[*p]; !ok {
				return fmt.Errorf("match %s: %w: %s", m.ID, ErrPlayerNotFound, *p)
			}
		}
		if m.IsSelfMatch() {
			return fmt.Errorf("%w: match %s", models.ErrSelfMatch, m.ID)
		}
		target := m.Stage.RaceTarget()
		for _, sc := range []*int{m.Score1, m.Score2} {
			if sc != nil && (*sc < 0 || *sc > target) {
				return fmt.Errorf("match %s: score %d outside 0..%d", m.ID, *sc, target)
			}
		}
		if m.IsCompleted() && *m.Score1 == *m.Score2 {
			return fmt.Errorf("match %s: %w", m.ID, models.ErrDrawnMatch)
		}
	}

	return nil
}
