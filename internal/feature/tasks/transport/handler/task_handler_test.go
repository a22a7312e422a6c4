package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "tasktrack/internal/feature/auth/domain/entity"
	"tasktrack/internal/feature/auth/transport/middleware"
	"tasktrack/internal/feature/tasks/domain/entity"
	"tasktrack/internal/feature/tasks/usecase"
)

// mockTaskUsecase is a mock implementation of the TaskUsecase interface.
type mockTaskUsecase struct {
	CreateFunc     func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.Task, error)
	GetForUserFunc func(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	UpdateFunc     func(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error)
	DeleteFunc     func(ctx context.Context, userID, taskID uint) error
}

func (m *mockTaskUsecase) Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, in)
	}
	return &entity.Task{ID: 1, UserID: userID}, nil
}

func (m *mockTaskUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Task, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskUsecase) GetForUser(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	if m.GetForUserFunc != nil {
		return m.GetForUserFunc(ctx, userID, taskID)
	}
	return nil, usecase.ErrTaskNotFound
}

func (m *mockTaskUsecase) Update(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, taskID, in)
	}
	return nil, usecase.ErrTaskNotFound
}

func (m *mockTaskUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, taskID)
	}
	return usecase.ErrTaskNotFound
}

// fakeSession injects an authenticated user the way SessionRequired does.
func fakeSession(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUser, &authentity.User{ID: userID, Email: "alice@example.com", Name: "Alice"})
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func newTaskRouter(uc TaskUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(uc)

	r := gin.New()
	auth := r.Group("/")
	auth.Use(fakeSession(userID))
	{
		auth.GET("/task", h.Home)
		auth.POST("/createtask", h.Create)
		auth.GET("/view", h.View)
		auth.GET("/update", h.UpdatePage)
		auth.POST("/update", h.Update)
		auth.GET("/delete", h.Delete)
	}
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func taskDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(entity.DateLayout, s)
	require.NoError(t, err)
	return &d
}

func TestTaskHandler_Create(t *testing.T) {
	validForm := url.Values{
		"title":       {"Write report"},
		"date":        {"2024-01-15"},
		"description": {"Q1 summary"},
		"status":      {"open"},
	}

	t.Run("success: creates for the current user and redirects", func(t *testing.T) {
		var gotUser uint
		var gotInput usecase.TaskInput
		r := newTaskRouter(&mockTaskUsecase{
			CreateFunc: func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error) {
				gotUser = userID
				gotInput = in
				return &entity.Task{ID: 1, UserID: userID}, nil
			},
		}, 42)

		w := postForm(r, "/createtask", validForm)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/task", w.Header().Get("Location"))
		assert.Equal(t, uint(42), gotUser)
		assert.Equal(t, "Write report", gotInput.Title)
		assert.Equal(t, "2024-01-15", gotInput.Date)
	})

	t.Run("failure: missing field redirects back with a notice", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{}, 42)

		form := url.Values{"title": {"no date"}}
		w := postForm(r, "/createtask", form)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/createtask", w.Header().Get("Location"))
	})

	t.Run("failure: invalid date redirects back", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{
			CreateFunc: func(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error) {
				return nil, usecase.ErrInvalidDate
			},
		}, 42)

		form := url.Values{
			"title":       {"Write report"},
			"date":        {"15/01/2024"},
			"description": {"Q1 summary"},
			"status":      {"open"},
		}
		w := postForm(r, "/createtask", form)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/createtask", w.Header().Get("Location"))
	})
}

func TestTaskHandler_View(t *testing.T) {
	t.Run("returns the current user's tasks", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{
			ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.Task, error) {
				assert.Equal(t, uint(42), userID)
				return []entity.Task{
					{ID: 1, UserID: 42, Title: "Write report", Date: taskDate(t, "2024-01-15"), Description: "Q1 summary", Status: "open"},
				}, nil
			},
		}, 42)

		w := get(r, "/view")

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Tasks []struct {
				ID     uint   `json:"id"`
				Title  string `json:"title"`
				Date   string `json:"date"`
				Status string `json:"status"`
			} `json:"tasks"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Tasks, 1)
		assert.Equal(t, "Write report", body.Tasks[0].Title)
		assert.Equal(t, "2024-01-15", body.Tasks[0].Date)
	})

	t.Run("empty list serializes as an empty array", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{}, 42)

		w := get(r, "/view")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tasks":[]`)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("success: redirects to the task page", func(t *testing.T) {
		var gotTask uint
		var gotInput usecase.TaskInput
		r := newTaskRouter(&mockTaskUsecase{
			UpdateFunc: func(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error) {
				gotTask = taskID
				gotInput = in
				return &entity.Task{ID: taskID, UserID: userID}, nil
			},
		}, 42)

		form := url.Values{
			"title":  {""},
			"date":   {"2024-02-01"},
			"status": {"done"},
		}
		w := postForm(r, "/update?id=7", form)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/task", w.Header().Get("Location"))
		assert.Equal(t, uint(7), gotTask)
		assert.Empty(t, gotInput.Title, "empty title must be passed through unchanged")
		assert.Equal(t, "2024-02-01", gotInput.Date)
	})

	t.Run("failure: missing id redirects with a notice", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{}, 42)

		w := postForm(r, "/update", url.Values{"date": {"2024-02-01"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/task", w.Header().Get("Location"))
	})

	t.Run("failure: not found redirects with a notice", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{
			UpdateFunc: func(ctx context.Context, userID, taskID uint, in usecase.TaskInput) (*entity.Task, error) {
				return nil, usecase.ErrTaskNotFound
			},
		}, 42)

		w := postForm(r, "/update?id=999", url.Values{"date": {"2024-02-01"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/task", w.Header().Get("Location"))
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Run("success: deletes and redirects", func(t *testing.T) {
		var gotTask uint
		r := newTaskRouter(&mockTaskUsecase{
			DeleteFunc: func(ctx context.Context, userID, taskID uint) error {
				assert.Equal(t, uint(42), userID)
				gotTask = taskID
				return nil
			},
		}, 42)

		w := get(r, "/delete?id=7")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/task", w.Header().Get("Location"))
		assert.Equal(t, uint(7), gotTask)
	})

	t.Run("failure: another user's task redirects with a notice", func(t *testing.T) {
		r := newTaskRouter(&mockTaskUsecase{
			DeleteFunc: func(ctx context.Context, userID, taskID uint) error {
				return usecase.ErrNotOwner
			},
		}, 42)

		w := get(r, "/delete?id=7")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/task", w.Header().Get("Location"))
	})
}
