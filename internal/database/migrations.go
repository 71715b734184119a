package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
)

// AutoMigrate creates or updates the schema for every registered entity, in
// dependency order so foreign keys always find their parent tables.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	for _, kind := range models.Kinds() {
		record := models.NewRecord(kind)
		if record == nil {
			return fmt.Errorf("no model registered for kind %q", kind)
		}
		if err := db.AutoMigrate(record); err != nil {
			return fmt.Errorf("migrate %s: %w", kind, err)
		}
	}

	return nil
}
