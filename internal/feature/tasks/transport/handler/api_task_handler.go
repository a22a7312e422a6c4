package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/api"
	"tasktrack/internal/feature/tasks/transport/http/dto"
	"tasktrack/internal/feature/tasks/usecase"
	jwtmw "tasktrack/internal/platform/jwt"
)

// APITaskHandler handles the JSON API's task CRUD endpoints.
// It shares the task usecase with the web handlers, so both surfaces observe
// identical semantics.
type APITaskHandler struct {
	tasks TaskUsecase
}

// NewAPITaskHandler creates an APITaskHandler with the given usecase.
func NewAPITaskHandler(tasks TaskUsecase) *APITaskHandler {
	return &APITaskHandler{tasks: tasks}
}

// List handles GET /api/tasks.
func (h *APITaskHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	tasks, err := h.tasks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("api list tasks failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load tasks"})
		return
	}

	out := make([]api.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(&t))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/tasks/:id.
func (h *APITaskHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	taskID, ok := taskIDFromParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid task id"})
		return
	}

	task, err := h.tasks.GetForUser(c.Request.Context(), userID, taskID)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Create handles POST /api/tasks.
func (h *APITaskHandler) Create(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, usecase.TaskInput{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /api/tasks/:id with the web surface's partial-update
// semantics: empty fields keep stored values, the date always overwrites.
func (h *APITaskHandler) Update(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	taskID, ok := taskIDFromParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid task id"})
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, taskID, usecase.TaskInput{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/tasks/:id.
func (h *APITaskHandler) Delete(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	taskID, ok := taskIDFromParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid task id"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps domain errors to API status codes.
func (h *APITaskHandler) writeError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
	case errors.Is(err, usecase.ErrNotOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "forbidden"})
	default:
		slog.Error("api task operation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// taskIDFromParam parses the :id path parameter.
func taskIDFromParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
