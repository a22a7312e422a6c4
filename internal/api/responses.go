// Package api defines the response types shared by all HTTP handlers.
package api

// ErrorResponse is the generic error body returned by API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed JWT after a successful API login.
type TokenResponse struct {
	Token string `json:"token"`
}

// PageResponse is the body of the web surface's GET pages. HTML rendering is
// out of scope, so pages return their state plus any pending flash notices.
type PageResponse struct {
	Status  string   `json:"status"`
	User    string   `json:"user,omitempty"`
	Notices []string `json:"notices,omitempty"`
}

// TaskResponse is the serialized form of a task record.
type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD, empty when unset
	Description string `json:"description"`
	Status      string `json:"status"`
}
