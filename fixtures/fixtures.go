package fixtures

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"

	"cuebook-api/packages/core/store"

	"gorm.io/gorm"
)

//go:embed data/*.json
var embedded embed.FS

// Source returns the fixture filesystem: dir when set, the fixtures compiled
// into the binary otherwise.
func Source(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

type Fixtures struct {
	store *store.GormStore
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{store: store.NewGormStore(db)}
}

// Load validates the fixtures of fsys and imports them into the database.
// Tournaments already present are replaced.
func (f *Fixtures) Load(ctx context.Context, fsys fs.FS) error {
	log.Println("Starting fixtures import...")

	data, err := store.LoadFixtures(fsys)
	if err != nil {
		return fmt.Errorf("failed to read fixtures: %w", err)
	}

	if err := f.store.ImportPlayers(ctx, data.Players); err != nil {
		return fmt.Errorf("failed to import players: %w", err)
	}

	for _, t := range data.Tournaments {
		if err := f.store.Import(ctx, t); err != nil {
			return fmt.Errorf("failed to import tournament %s: %w", t.ID, err)
		}
		log.Printf("Imported tournament %s (%d groups, %d matches)", t.ID, len(t.Groups), len(t.Matches))
	}

	log.Printf("Imported %d players and %d tournaments", len(data.Players), len(data.Tournaments))
	return nil
}

// ClearAllData removes every tournament and player.
func (f *Fixtures) ClearAllData(ctx context.Context) error {
	log.Println("Clearing tournament data...")
	return f.store.Clear(ctx)
}
