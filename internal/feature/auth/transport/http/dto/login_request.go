// Package dto defines the request bodies of the auth endpoints.
package dto

// LoginReq is the body of POST /login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
