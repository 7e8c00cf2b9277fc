package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	return &Migrator{
		db:         db,
		migrations: []MigrationDefinition{},
	}, nil
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate runs every pending migration in one new batch. Each migration runs
// in its own transaction.
func (m *Migrator) Migrate() error {
	color.Cyan("Running database migrations...")

	batch, err := m.latestBatch()
	if err != nil {
		return err
	}
	batch++

	ran := 0
	for _, migration := range m.migrations {
		done, err := m.hasRun(migration.Name)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		fmt.Printf("Migrating: %s\n", migration.Name)

		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("migration %s failed: %w", migration.Name, err)
			}
			record := Migration{Name: migration.Name, Batch: batch}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		color.Green("Migrated: %s", migration.Name)
		ran++
	}

	if ran == 0 {
		color.Yellow("Nothing to migrate")
		return nil
	}
	color.Green("Migration completed successfully")
	return nil
}

// Rollback undoes the last steps batches, newest migration first.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	color.Cyan("Rolling back %d batch(es)...", steps)

	batch, err := m.latestBatch()
	if err != nil {
		return err
	}

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return err
		}

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			fmt.Printf("Rolling back: %s\n", record.Name)

			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
				}
				if err := tx.Delete(&record).Error; err != nil {
					return fmt.Errorf("failed to remove migration record %s: %w", record.Name, err)
				}
				return nil
			})
			if err != nil {
				return err
			}

			color.Green("Rolled back: %s", record.Name)
		}

		batch--
	}

	color.Green("Rollback completed successfully")
	return nil
}

// Status lists the migrations that already ran, oldest batch first, and the
// names of the pending ones.
func (m *Migrator) Status() ([]Migration, []string, error) {
	var done []Migration
	if err := m.db.Order("batch ASC, id ASC").Find(&done).Error; err != nil {
		return nil, nil, err
	}

	ran := make(map[string]bool, len(done))
	for _, r := range done {
		ran[r.Name] = true
	}
	var pending []string
	for _, migration := range m.migrations {
		if !ran[migration.Name] {
			pending = append(pending, migration.Name)
		}
	}
	return done, pending, nil
}

func (m *Migrator) hasRun(name string) (bool, error) {
	var count int64
	if err := m.db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Migrator) latestBatch() (int, error) {
	var migration Migration
	err := m.db.Order("batch DESC").First(&migration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return migration.Batch, nil
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
