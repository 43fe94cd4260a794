package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Taxon{},
		&NameEntry{},
		&Metadata{},
	}
}

// AllTables returns DDL generators of all models in creation order.
func AllTables() []DDLGenerator {
	return []DDLGenerator{
		Taxon{},
		NameEntry{},
		Metadata{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}
	for _, t := range AllTables() {
		for _, idx := range t.IndexDDL() {
			if err := db.Exec(idx).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
