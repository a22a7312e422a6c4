// Package handler provides the HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/api"
	"tasktrack/internal/feature/auth/transport/middleware"
	"tasktrack/internal/feature/tasks/domain/entity"
	"tasktrack/internal/feature/tasks/transport/http/dto"
	"tasktrack/internal/feature/tasks/usecase"
	"tasktrack/internal/platform/web"
)

// TaskUsecase defines the task operations used by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TaskUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Task, error)
	GetForUser(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	Update(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

// TaskHandler handles the web surface's task pages and form posts.
// All routes sit behind the session guard; the current user comes from the
// request context, never from ambient state.
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler creates a TaskHandler with the given usecase.
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Home handles GET/POST /task, the task landing page.
func (h *TaskHandler) Home(c *gin.Context) {
	resp := api.PageResponse{Status: "ok", Notices: web.TakeNotices(c)}
	if user, ok := middleware.CurrentUser(c); ok {
		resp.User = user.Name
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePage handles GET /createtask.
func (h *TaskHandler) CreatePage(c *gin.Context) {
	c.JSON(http.StatusOK, api.PageResponse{Status: "create", Notices: web.TakeNotices(c)})
}

// Create handles POST /createtask. The new task is always owned by the
// current user; a bad date redirects back with a notice.
func (h *TaskHandler) Create(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var form dto.CreateTaskForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("create task validation failed", "error", err, "user_id", userID)
		web.SetNotice(c, "All of title, date, description and status are required.")
		web.Redirect(c, "/createtask")
		return
	}

	_, err := h.tasks.Create(c.Request.Context(), userID, usecase.TaskInput{
		Title:       form.Title,
		Date:        form.Date,
		Description: form.Description,
		Status:      form.Status,
	})
	if err != nil {
		h.noticeForError(c, err, userID, "/createtask")
		return
	}
	web.Redirect(c, "/task")
}

// View handles GET/POST /view, listing the current user's tasks.
// Tasks of other users never appear here.
func (h *TaskHandler) View(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	tasks, err := h.tasks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list tasks failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load tasks"})
		return
	}

	out := make([]api.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(&t))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out, "notices": web.TakeNotices(c)})
}

// UpdatePage handles GET /update?id=, returning the task to be edited.
func (h *TaskHandler) UpdatePage(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	taskID, ok := taskIDFromQuery(c)
	if !ok {
		web.SetNotice(c, "No such task.")
		web.Redirect(c, "/task")
		return
	}

	task, err := h.tasks.GetForUser(c.Request.Context(), userID, taskID)
	if err != nil {
		h.noticeForError(c, err, userID, "/task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": toTaskResponse(task), "notices": web.TakeNotices(c)})
}

// Update handles POST /update?id=.
// Empty title/description/status keep the stored values; the date is always
// reparsed and overwritten. An unparsable date performs no mutation.
func (h *TaskHandler) Update(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	taskID, ok := taskIDFromQuery(c)
	if !ok {
		web.SetNotice(c, "No such task.")
		web.Redirect(c, "/task")
		return
	}

	var form dto.UpdateTaskForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("update task validation failed", "error", err, "user_id", userID, "task_id", taskID)
		web.SetNotice(c, "A date is required.")
		web.Redirect(c, "/task")
		return
	}

	_, err := h.tasks.Update(c.Request.Context(), userID, taskID, usecase.TaskInput{
		Title:       form.Title,
		Date:        form.Date,
		Description: form.Description,
		Status:      form.Status,
	})
	if err != nil {
		h.noticeForError(c, err, userID, "/task")
		return
	}
	web.Redirect(c, "/task")
}

// Delete handles GET/POST /delete?id=.
// The route requires a session and verifies ownership; deletion is immediate
// and permanent.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	taskID, ok := taskIDFromQuery(c)
	if !ok {
		web.SetNotice(c, "No such task.")
		web.Redirect(c, "/task")
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.noticeForError(c, err, userID, "/task")
		return
	}
	web.Redirect(c, "/task")
}

// noticeForError recovers a domain error into a flash notice plus redirect.
func (h *TaskHandler) noticeForError(c *gin.Context, err error, userID uint, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate):
		web.SetNotice(c, "Dates must be in YYYY-MM-DD form.")
	case errors.Is(err, usecase.ErrTaskNotFound):
		web.SetNotice(c, "No such task.")
	case errors.Is(err, usecase.ErrNotOwner):
		slog.Warn("task access denied", "error", err, "user_id", userID)
		web.SetNotice(c, "No such task.")
	default:
		slog.Error("task operation failed", "error", err, "user_id", userID)
		web.SetNotice(c, "Something went wrong, please try again.")
	}
	web.Redirect(c, fallback)
}

// taskIDFromQuery parses the ?id= query parameter.
func taskIDFromQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// toTaskResponse serializes a task for both surfaces.
func toTaskResponse(t *entity.Task) api.TaskResponse {
	return api.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Date:        t.DateString(),
		Description: t.Description,
		Status:      t.Status,
	}
}
