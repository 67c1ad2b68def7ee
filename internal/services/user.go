package services

import (
	"context"
	"errors"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
	"github.com/diewo77/go-todolist/internal/policy"
	"github.com/diewo77/go-todolist/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInput carries the user form fields. Password and Confirm are the
// double entry; on edit both may be left empty to keep the current hash.
type UserInput struct {
	Username string
	Email    string
	Password string
	Confirm  string
	Role     string
}

type UserService struct {
	DB *gorm.DB
	Az *policy.Authorizer
}

func NewUserService(db *gorm.DB, az *policy.Authorizer) *UserService {
	return &UserService{DB: db, Az: az}
}

// List returns all user accounts, admin only.
func (s *UserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := s.Az.Gate.Authorize(ctx, actor, gate.ActionList, policy.ResourceUser, nil); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get loads one account, admin only.
func (s *UserService) Get(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if err := s.Az.Gate.Authorize(ctx, actor, gate.ActionView, policy.ResourceUser, nil); err != nil {
		return nil, err
	}
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new account. The password double entry is mandatory
// and must match; the hash is computed before anything is written, so a
// failing validation leaves no row behind.
func (s *UserService) Create(ctx context.Context, actor *models.User, in UserInput) (*models.User, error) {
	if err := s.Az.Gate.Authorize(ctx, actor, gate.ActionCreate, policy.ResourceUser, nil); err != nil {
		return nil, err
	}
	v := make(validation.Violations)
	validation.Required("username", in.Username, v)
	validation.Required("email", in.Email, v)
	validation.Required("password", in.Password, v)
	validation.Confirmed("password", in.Password, in.Confirm, v)
	if in.Username != "" && s.usernameTaken(ctx, in.Username, 0) {
		v["username"] = "already_taken"
	}
	if !v.Empty() {
		return nil, NewValidationError(v)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Roles:    normalizeRole(in.Role),
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update edits an existing account. An empty password double entry keeps
// the stored hash; a provided one must match its confirmation and is
// re-hashed. The principal cache is invalidated so role changes apply on
// the next request.
func (s *UserService) Update(ctx context.Context, actor *models.User, id uint, in UserInput) (*models.User, error) {
	if err := s.Az.Gate.Authorize(ctx, actor, gate.ActionUpdate, policy.ResourceUser, nil); err != nil {
		return nil, err
	}
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	v := make(validation.Violations)
	validation.Required("username", in.Username, v)
	validation.Required("email", in.Email, v)
	if in.Password != "" || in.Confirm != "" {
		validation.Confirmed("password", in.Password, in.Confirm, v)
	}
	if in.Username != "" && in.Username != user.Username && s.usernameTaken(ctx, in.Username, user.ID) {
		v["username"] = "already_taken"
	}
	if !v.Empty() {
		return nil, NewValidationError(v)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Roles = normalizeRole(in.Role)
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	s.Az.Invalidate(user.ID)
	return &user, nil
}

func (s *UserService) usernameTaken(ctx context.Context, username string, excludeID uint) bool {
	var count int64
	q := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// normalizeRole keeps the single selected elevated tag; anything else is
// the implicit base role and is not stored redundantly.
func normalizeRole(role string) string {
	if role == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleUser
}
