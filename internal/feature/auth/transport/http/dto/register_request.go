// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterForm is the form body posted to /register on the web surface.
type RegisterForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
	Name     string `form:"name" binding:"required"`
}

// SignupReq is the JSON body for POST /api/signup.
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}
