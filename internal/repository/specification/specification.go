package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories take a variadic list and apply
// them in order, so ordering and pagination specs belong at the end.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Apply chains specs onto db.
func Apply(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		if spec == nil {
			continue
		}
		db = spec.Apply(db)
	}
	return db
}
