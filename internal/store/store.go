package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equipment-ingest/internal/model"
)

// Store defines every query the importer is allowed to issue. Each call is a single round trip.
type Store interface {
	// FindClientByName returns the id of the first client named exactly name, or nil when none exists.
	FindClientByName(ctx context.Context, name string) (*uuid.UUID, error)
	// InsertClient inserts c unconditionally and returns the number of affected rows.
	InsertClient(ctx context.Context, c model.Client) (int64, error)
	// UpsertEquipment inserts e, or does nothing if a row with the same id exists.
	// It returns 0 in the latter case.
	UpsertEquipment(ctx context.Context, e model.Equipment) (int64, error)
	// CountEquipment returns the number of equipment rows.
	CountEquipment(ctx context.Context) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store. The *gorm.DB and its connection pool
// are shared by every caller.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindClientByName(ctx context.Context, name string) (*uuid.UUID, error) {
	var clients []model.Client
	res := s.db.WithContext(ctx).
		Select("id").
		Where("name = ?", name).
		Limit(1).
		Find(&clients)
	if res.Error != nil {
		return nil, classify("find client", res.Error)
	}
	if len(clients) == 0 {
		return nil, nil
	}
	id := clients[0].ID
	return &id, nil
}

func (s *gormStore) InsertClient(ctx context.Context, c model.Client) (int64, error) {
	res := s.db.WithContext(ctx).Create(&c)
	if res.Error != nil {
		return 0, classify("insert client", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) UpsertEquipment(ctx context.Context, e model.Equipment) (int64, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&e)
	if res.Error != nil {
		return 0, classify("upsert equipment", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) CountEquipment(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Equipment{}).Count(&n).Error; err != nil {
		return 0, classify("count equipment", err)
	}
	return n, nil
}
