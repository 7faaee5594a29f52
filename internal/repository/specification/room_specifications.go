package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

type CreatedByIn struct {
	UserIDs []uuid.UUID
}

func (s CreatedByIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("creator_id IN ?", s.UserIDs)
}

// WithCreator preloads the room's creator.
type WithCreator struct{}

func (s WithCreator) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator")
}
