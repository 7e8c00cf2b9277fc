package migrations

import "gorm.io/gorm"

func GetLedgerMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_03_02_000000_create_ledger_groups_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS ledger_groups (
						id VARCHAR(64) PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						owner_id VARCHAR(64) NOT NULL,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_ledger_groups_owner_id ON ledger_groups(owner_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS ledger_groups CASCADE").Error
			},
		},
		{
			Name: "2026_03_02_000001_create_group_members_table",
			Up: func(db *gorm.DB) error {
				// One row per (user, group); transitions update it in place.
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS group_members (
						id SERIAL PRIMARY KEY,
						user_id VARCHAR(64) NOT NULL,
						group_id VARCHAR(64) NOT NULL REFERENCES ledger_groups(id) ON DELETE CASCADE,
						status VARCHAR(20) NOT NULL DEFAULT 'idle'
							CHECK (status IN ('idle', 'requesting', 'inviting', 'active')),
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_group_members_user_group ON group_members(user_id, group_id);
					CREATE INDEX IF NOT EXISTS idx_group_members_group_status ON group_members(group_id, status);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS group_members CASCADE").Error
			},
		},
	}
}
