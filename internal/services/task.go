// Package services orchestrates the task and user use cases against the
// authorization gate and GORM persistence. Handlers translate the returned
// errors into the redirect/flash contract.
package services

import (
	"context"
	"errors"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
	"github.com/diewo77/go-todolist/internal/policy"
	"github.com/diewo77/go-todolist/validation"
	"gorm.io/gorm"
)

type TaskService struct {
	DB   *gorm.DB
	Gate *gate.Gate[*models.User]
}

func NewTaskService(db *gorm.DB, g *gate.Gate[*models.User]) *TaskService {
	return &TaskService{DB: db, Gate: g}
}

// List returns the actor's own tasks. Admins additionally see every task
// owned by the sentinel account; the union is deduplicated by id (the
// sentinel user is an admin and would otherwise see its tasks twice).
func (s *TaskService) List(ctx context.Context, actor *models.User) ([]models.Task, error) {
	if err := s.Gate.Authorize(ctx, actor, gate.ActionList, policy.ResourceTask, nil); err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := s.DB.WithContext(ctx).Preload("User").Where("user_id = ?", actor.ID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return tasks, nil
	}

	var sentinel models.User
	err := s.DB.WithContext(ctx).Where("username = ?", models.SentinelUsername).First(&sentinel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tasks, nil
	}
	if err != nil {
		return nil, err
	}
	var sentinelTasks []models.Task
	if err := s.DB.WithContext(ctx).Preload("User").Where("user_id = ?", sentinel.ID).Find(&sentinelTasks).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint]bool, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = true
	}
	for _, t := range sentinelTasks {
		if !seen[t.ID] {
			tasks = append(tasks, t)
			seen[t.ID] = true
		}
	}
	return tasks, nil
}

// Create persists a new task owned by the actor, not done, timestamped now.
func (s *TaskService) Create(ctx context.Context, actor *models.User, title, content string) (*models.Task, error) {
	if err := s.Gate.Authorize(ctx, actor, gate.ActionCreate, policy.ResourceTask, nil); err != nil {
		return nil, err
	}
	if err := validateTaskFields(title, content); err != nil {
		return nil, err
	}
	task := models.Task{Title: title, Content: content, UserID: &actor.ID}
	if err := s.DB.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Edit updates title and content. The owner is re-applied from the loaded
// record before saving: whatever owner value a form submission carries is
// discarded here by construction.
func (s *TaskService) Edit(ctx context.Context, actor *models.User, id uint, title, content string) (*models.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(ctx, actor, gate.ActionUpdate, policy.ResourceTask, task); err != nil {
		return nil, err
	}
	if err := validateTaskFields(title, content); err != nil {
		return nil, err
	}
	originalOwner := task.UserID
	task.Title = title
	task.Content = content
	task.UserID = originalOwner
	if err := s.DB.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Toggle flips the done flag; the grant condition is the edit rule.
func (s *TaskService) Toggle(ctx context.Context, actor *models.User, id uint) (*models.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(ctx, actor, gate.ActionToggle, policy.ResourceTask, task); err != nil {
		return nil, err
	}
	task.Toggle()
	if err := s.DB.WithContext(ctx).Model(task).Update("done", task.Done).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, actor *models.User, id uint) error {
	task, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Gate.Authorize(ctx, actor, gate.ActionDelete, policy.ResourceTask, task); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(task).Error
}

// Get loads a single task after a view check.
func (s *TaskService) Get(ctx context.Context, actor *models.User, id uint) (*models.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(ctx, actor, gate.ActionView, policy.ResourceTask, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) load(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := s.DB.WithContext(ctx).Preload("User").First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func validateTaskFields(title, content string) error {
	v := make(validation.Violations)
	validation.Required("title", title, v)
	validation.Required("content", content, v)
	validation.MaxLen("title", title, 255, v)
	if !v.Empty() {
		return NewValidationError(v)
	}
	return nil
}
