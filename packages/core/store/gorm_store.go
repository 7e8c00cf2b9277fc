package store

import (
	"context"
	"errors"
	"fmt"

	"cuebook-api/packages/core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore reads tournaments from PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	var tournaments []models.Tournament

	result := s.db.WithContext(ctx).
		Preload("Groups").
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at ASC NULLS LAST, id ASC")
		}).
		Order("starts_at DESC").
		Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range tournaments {
		if err := s.loadGroupPlayers(ctx, &tournaments[i]); err != nil {
			return nil, err
		}
	}

	if err := s.validate(ctx, tournaments...); err != nil {
		return nil, err
	}

	return tournaments, nil
}

func (s *GormStore) GetTournament(ctx context.Context, idOrSlug string) (*models.Tournament, error) {
	var tournament models.Tournament

	result := s.db.WithContext(ctx).
		Preload("Groups").
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at ASC NULLS LAST, id ASC")
		}).
		Where("id = ? OR slug = ?", idOrSlug, idOrSlug).
		First(&tournament)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, result.Error
	}

	if err := s.loadGroupPlayers(ctx, &tournament); err != nil {
		return nil, err
	}

	if err := s.validate(ctx, tournament); err != nil {
		return nil, err
	}

	return &tournament, nil
}

// validate applies the fixture rules to rows read back from the database,
// which may have been edited by hand.
func (s *GormStore) validate(ctx context.Context, tournaments ...models.Tournament) error {
	if len(tournaments) == 0 {
		return nil
	}
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return err
	}
	return checkStored(players, tournaments)
}

func checkStored(players []models.Player, tournaments []models.Tournament) error {
	index := make(map[string]int, len(players))
	for i, p := range players {
		index[p.ID] = i
	}
	for i := range tournaments {
		if err := ValidateTournament(&tournaments[i], index); err != nil {
			return fmt.Errorf("tournament %s: %w: %w", tournaments[i].ID, ErrInvalidTournament, err)
		}
	}
	return nil
}

func (s *GormStore) loadGroupPlayers(ctx context.Context, t *models.Tournament) error {
	if len(t.Groups) == 0 {
		return nil
	}

	ids := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		ids[i] = g.ID
	}

	var rows []models.GroupPlayer
	result := s.db.WithContext(ctx).
		Where("group_id IN ?", ids).
		Order("position ASC").
		Find(&rows)
	if result.Error != nil {
		return result.Error
	}

	byGroup := make(map[string][]string, len(t.Groups))
	for _, r := range rows {
		byGroup[r.GroupID] = append(byGroup[r.GroupID], r.PlayerID)
	}
	for i := range t.Groups {
		t.Groups[i].PlayerIDs = byGroup[t.Groups[i].ID]
	}
	return nil
}

func (s *GormStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (s *GormStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	var player models.Player

	result := s.db.WithContext(ctx).Where("id = ?", id).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

// ImportPlayers upserts players by id.
func (s *GormStore) ImportPlayers(ctx context.Context, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "nickname", "updated_at"}),
		}).
		Create(&players).Error
}

// Import replaces a tournament with the given one: groups, group players and
// matches are rewritten in a single transaction.
func (s *GormStore) Import(ctx context.Context, t models.Tournament) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTournament(tx, t.ID); err != nil {
			return err
		}

		groups, matches := t.Groups, t.Matches
		t.Groups, t.Matches = nil, nil
		if err := tx.Omit(clause.Associations).Create(&t).Error; err != nil {
			return err
		}

		for _, g := range groups {
			g.TournamentID = t.ID
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
			for pos, playerID := range g.PlayerIDs {
				row := models.GroupPlayer{GroupID: g.ID, PlayerID: playerID, Position: pos}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		if len(matches) > 0 {
			for i := range matches {
				matches[i].TournamentID = t.ID
			}
			if err := tx.Create(&matches).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Clear removes every tournament and player.
func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Match{},
			&models.GroupPlayer{},
			&models.Group{},
			&models.Tournament{},
			&models.Player{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteTournament(tx *gorm.DB, id string) error {
	if err := tx.Where("tournament_id = ?", id).Delete(&models.Match{}).Error; err != nil {
		return err
	}
	groupIDs := tx.Model(&models.Group{}).Select("id").Where("tournament_id = ?", id)
	if err := tx.Where("group_id IN (?)", groupIDs).Delete(&models.GroupPlayer{}).Error; err != nil {
		return err
	}
	if err := tx.Where("tournament_id = ?", id).Delete(&models.Group{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Tournament{}).Error
}
