package database

import "hikaye/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Post{},
		&models.Video{},
		&models.Comment{},
	}
}
