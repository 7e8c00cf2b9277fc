package migrations

import "gorm.io/gorm"

// GetAllMigrations returns every migration in the order they must run.
func GetAllMigrations() []MigrationDefinition {
	var all []MigrationDefinition
	all = append(all, GetCoreMigrations()...)
	all = append(all, GetLedgerMigrations()...)
	return all
}

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_03_01_000000_create_tournament_tables",
			Up: func(db *gorm.DB) error {
				// Players and tournaments
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id VARCHAR(64) PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						nickname VARCHAR(255) NULL,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE TABLE IF NOT EXISTS tournaments (
						id VARCHAR(64) PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(255) UNIQUE NOT NULL,
						starts_at TIMESTAMPTZ NOT NULL,
						advancement_rules JSONB DEFAULT '[]'::jsonb,
						quarter_final_rules JSONB DEFAULT '[]'::jsonb,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_tournaments_starts_at ON tournaments(starts_at);
				`).Error; err != nil {
					return err
				}

				// Groups and their players
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_groups (
						id VARCHAR(64) PRIMARY KEY,
						tournament_id VARCHAR(64) NOT NULL,
						name VARCHAR(255) NOT NULL,
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_tournament_groups_tournament_id ON tournament_groups(tournament_id);
					CREATE TABLE IF NOT EXISTS tournament_group_players (
						group_id VARCHAR(64) NOT NULL,
						player_id VARCHAR(64) NOT NULL,
						position INT DEFAULT 0,
						PRIMARY KEY (group_id, player_id),
						FOREIGN KEY (group_id) REFERENCES tournament_groups(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
				`).Error; err != nil {
					return err
				}

				// Matches. Scores stay NULL until the match is played.
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_matches (
						id VARCHAR(64) PRIMARY KEY,
						tournament_id VARCHAR(64) NOT NULL,
						stage VARCHAR(20) NOT NULL CHECK (stage IN ('group', 'quarter-final', 'semi-final', 'final')),
						group_id VARCHAR(64) NULL,
						bracket_order INT DEFAULT 0,
						player1_id VARCHAR(64) NULL,
						player2_id VARCHAR(64) NULL,
						score1 INT NULL CHECK (score1 >= 0),
						score2 INT NULL CHECK (score2 >= 0),
						scheduled_at TIMESTAMPTZ NULL,
						FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
						FOREIGN KEY (player1_id) REFERENCES players(id),
						FOREIGN KEY (player2_id) REFERENCES players(id)
					);
					CREATE INDEX IF NOT EXISTS idx_tournament_matches_tournament_id ON tournament_matches(tournament_id);
					CREATE INDEX IF NOT EXISTS idx_tournament_matches_group_id ON tournament_matches(group_id);
					CREATE INDEX IF NOT EXISTS idx_tournament_matches_scheduled_at ON tournament_matches(scheduled_at);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				// Drop tables in reverse order (because of foreign keys)
				for _, table := range []string{"tournament_matches", "tournament_group_players", "tournament_groups", "tournaments", "players"} {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Name: "2026_03_03_000000_add_tournament_match_checks",
			Up: func(db *gorm.DB) error {
				// Race targets: group 5, quarter-final 7, semi-final 9, final 11.
				return db.Exec(`
					ALTER TABLE tournament_matches
						ADD CONSTRAINT chk_tournament_matches_race_target CHECK (
							score1 <= CASE stage WHEN 'group' THEN 5 WHEN 'quarter-final' THEN 7 WHEN 'semi-final' THEN 9 ELSE 11 END
							AND score2 <= CASE stage WHEN 'group' THEN 5 WHEN 'quarter-final' THEN 7 WHEN 'semi-final' THEN 9 ELSE 11 END
						),
						ADD CONSTRAINT chk_tournament_matches_no_draw CHECK (
							score1 IS NULL OR score2 IS NULL OR score1 <> score2
							OR score1 < CASE stage WHEN 'group' THEN 5 WHEN 'quarter-final' THEN 7 WHEN 'semi-final' THEN 9 ELSE 11 END
						),
						ADD CONSTRAINT chk_tournament_matches_distinct_players CHECK (
							player1_id IS NULL OR player2_id IS NULL OR player1_id <> player2_id
						);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					ALTER TABLE tournament_matches
						DROP CONSTRAINT IF EXISTS chk_tournament_matches_race_target,
						DROP CONSTRAINT IF EXISTS chk_tournament_matches_no_draw,
						DROP CONSTRAINT IF EXISTS chk_tournament_matches_distinct_players;
				`).Error
			},
		},
	}
}
