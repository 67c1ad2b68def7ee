package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-todolist/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the baseline admin account when it is missing. Safe to run
// on every start; existing rows are left untouched.
func Seed(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Email:    "admin@todolist.com",
		Password: string(hash),
		Roles:    models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	fmt.Println("[DB] Seeded admin user")
	return nil
}
