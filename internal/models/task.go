package models

import "time"

// Task is a to-do item owned by exactly one user. UserID is nullable only
// transiently: tasks recorded without an owner are reassigned to the
// sentinel account by db.ReconcileAnonymousTasks.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Toggle flips the done flag.
func (t *Task) Toggle() { t.Done = !t.Done }

// OwnedBy reports whether the task belongs to the given user id.
// An ownerless task matches nobody.
func (t *Task) OwnedBy(userID uint) bool {
	return t.UserID != nil && *t.UserID == userID
}

// SentinelOwned reports whether the task's owner is the anonymous
// placeholder account. Requires the User association to be loaded.
func (t *Task) SentinelOwned() bool {
	return t.User != nil && t.User.IsSentinel()
}
