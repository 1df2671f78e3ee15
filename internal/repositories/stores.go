package repositories

import (
	"context"

	"github.com/a-boudoun/matcha-server/internal/services"
	"gorm.io/gorm"
)

// GormStores bundles the Postgres-backed stores behind a single
// unit-of-work handle. Atomic re-binds every store to one transaction
// so swipe decisions and their writes observe the same snapshot.
type GormStores struct {
	db            *gorm.DB
	profiles      *PostgresProfileRepository
	relationships *PostgresRelationshipRepository
	blocks        *PostgresBlockRepository
	visits        *PostgresVisitRepository
}

// NewGormStores creates a GormStores over the given connection
func NewGormStores(db *gorm.DB) *GormStores {
	return &GormStores{
		db:            db,
		profiles:      NewPostgresProfileRepository(db),
		relationships: NewPostgresRelationshipRepository(db),
		blocks:        NewPostgresBlockRepository(db),
		visits:        NewPostgresVisitRepository(db),
	}
}

func (s *GormStores) Profiles() services.ProfileStore {
	return s.profiles
}

func (s *GormStores) Relationships() services.RelationshipStore {
	return s.relationships
}

func (s *GormStores) Blocks() services.BlockStore {
	return s.blocks
}

func (s *GormStores) Visits() services.VisitStore {
	return s.visits
}

// Atomic runs fn inside a database transaction. Any error returned by
// fn rolls the transaction back.
func (s *GormStores) Atomic(ctx context.Context, fn func(tx services.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStores(tx))
	})
}
