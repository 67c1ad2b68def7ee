package policy

import (
	"context"
	"errors"

	"github.com/diewo77/go-todolist/internal/models"
	"gorm.io/gorm"
)

// DBUserResolver loads the principal record for a session user id.
// A missing user resolves to nil without error: the gate treats a nil
// principal as unauthenticated.
type DBUserResolver struct {
	db *gorm.DB
}

func NewDBUserResolver(db *gorm.DB) *DBUserResolver {
	return &DBUserResolver{db: db}
}

// Resolve implements gate.Resolver.
func (r *DBUserResolver) Resolve(ctx context.Context, uid uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
