// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

// CreateTaskForm is the form body posted to /createtask.
// No field is optional at the boundary even though the store permits nulls.
type CreateTaskForm struct {
	Title       string `form:"title" binding:"required"`
	Date        string `form:"date" binding:"required"`
	Description string `form:"description" binding:"required"`
	Status      string `form:"status" binding:"required"`
}

// UpdateTaskForm is the form body posted to /update?id=.
// Title, description and status may be left empty to keep the stored values;
// the date is always required and overwrites the stored one.
type UpdateTaskForm struct {
	Title       string `form:"title"`
	Date        string `form:"date" binding:"required"`
	Description string `form:"description"`
	Status      string `form:"status"`
}

// CreateTaskReq is the JSON body for POST /api/tasks.
type CreateTaskReq struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

// UpdateTaskReq is the JSON body for PUT /api/tasks/:id, with the same
// partial-update semantics as the web form.
type UpdateTaskReq struct {
	Title       string `json:"title"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
