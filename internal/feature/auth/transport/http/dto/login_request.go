// Package dto defines the HTTP request/response shapes of the auth feature.
package dto

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the error payload of the auth endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
