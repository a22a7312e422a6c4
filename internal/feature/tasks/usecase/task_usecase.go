package usecase

import (
	"context"
	"time"

	"tasktrack/internal/feature/tasks/domain/entity"
)

// TaskRepository abstracts the persistence layer for task entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID retrieves a task by ID, returning ErrTaskNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// ListByUser returns all tasks owned by the user, ascending by ID.
	ListByUser(ctx context.Context, userID uint) ([]entity.Task, error)

	// Mutate loads the task by ID, applies fn to it and saves the result,
	// all inside a single transaction so concurrent updates of the same
	// record cannot lose writes. When fn returns an error the transaction
	// rolls back and nothing is persisted.
	Mutate(ctx context.Context, id uint, fn func(*entity.Task) error) (*entity.Task, error)

	// Delete removes a task by ID.
	Delete(ctx context.Context, id uint) error
}

// TaskInput carries the submitted field values for create and update.
// All fields arrive as strings from the protocol boundary; Date is parsed
// against entity.DateLayout.
type TaskInput struct {
	Title       string
	Date        string
	Description string
	Status      string
}

// taskUsecase implements task CRUD scoped to the authenticated user.
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase creates a new taskUsecase instance.
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// Create stores a new task owned by userID.
// The date must parse as YYYY-MM-DD; otherwise ErrInvalidDate is returned and
// nothing is stored.
func (u *taskUsecase) Create(ctx context.Context, userID uint, in TaskInput) (*entity.Task, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	task := &entity.Task{
		UserID:      userID,
		Title:       in.Title,
		Date:        date,
		Description: in.Description,
		Status:      in.Status,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByUser returns every task owned by userID, ascending by ID.
func (u *taskUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Task, error) {
	return u.tasks.ListByUser(ctx, userID)
}

// GetForUser retrieves a single task, verifying ownership.
func (u *taskUsecase) GetForUser(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotOwner
	}
	return task, nil
}

// Update applies a partial update to the task.
//
// Empty title, description and status leave the stored values unchanged,
// while the date is always reparsed and overwritten. The asymmetry is
// observable behavior and kept deliberately. An unparsable date fails with
// ErrInvalidDate before anything is touched.
func (u *taskUsecase) Update(ctx context.Context, userID, taskID uint, in TaskInput) (*entity.Task, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	return u.tasks.Mutate(ctx, taskID, func(task *entity.Task) error {
		if task.UserID != userID {
			return ErrNotOwner
		}
		if in.Title != "" {
			task.Title = in.Title
		}
		if in.Description != "" {
			task.Description = in.Description
		}
		if in.Status != "" {
			task.Status = in.Status
		}
		task.Date = date
		return nil
	})
}

// Delete removes the task after verifying ownership.
// Deletion is immediate and permanent; there is no soft delete.
func (u *taskUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return ErrNotOwner
	}
	return u.tasks.Delete(ctx, taskID)
}

// parseDate parses a YYYY-MM-DD string, mapping failures to ErrInvalidDate.
func parseDate(s string) (*time.Time, error) {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &d, nil
}
