package rating

import (
	"github.com/parthjadhav85/MyTools-Website/internal/db"
	"gorm.io/gorm"
)

// Init ensures the rating schema and table exist.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, "app_rating"); err != nil {
		return err
	}
	return d.AutoMigrate(&Rating{})
}
