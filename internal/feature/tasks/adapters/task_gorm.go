// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktrack/internal/feature/tasks/domain/entity"
	"tasktrack/internal/feature/tasks/usecase"
)

// taskGorm is a GORM implementation of the TaskRepository interface.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time check that taskGorm implements TaskRepository.
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new taskGorm instance with the given connection.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create inserts a task into the database.
// Associations are omitted so the owner row is referenced, never written.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID retrieves a task by ID.
// Returns usecase.ErrTaskNotFound when no task matches.
func (r *taskGorm) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByUser returns all tasks owned by the user, ascending by ID.
func (r *taskGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Mutate runs a load-apply-save cycle inside one transaction.
// The row is read with SELECT ... FOR UPDATE so a concurrent Mutate of the
// same record blocks until this transaction commits; without the lock both
// transactions read the same snapshot under MySQL and Postgres and the later
// Save overwrites the earlier one's columns. SQLite has no row locks and its
// driver drops the clause.
func (r *taskGorm) Mutate(ctx context.Context, id uint, fn func(*entity.Task) error) (*entity.Task, error) {
	var task entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrTaskNotFound
			}
			return err
		}
		if err := fn(&task); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by ID.
// Returns usecase.ErrTaskNotFound when no row was deleted.
func (r *taskGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
