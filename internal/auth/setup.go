package auth

import (
	"github.com/parthjadhav85/MyTools-Website/internal/db"
	"gorm.io/gorm"
)

// Init ensures the auth schema and tables exist.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, "app_auth"); err != nil {
		return err
	}
	return d.AutoMigrate(&User{}, &Session{})
}
