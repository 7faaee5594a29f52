package specification

import "gorm.io/gorm"

// InterestsNotEmpty keeps profiles that have something to cluster on.
type InterestsNotEmpty struct{}

func (s InterestsNotEmpty) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("interests <> ''")
}
