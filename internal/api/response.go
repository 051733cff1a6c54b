// Package api holds the JSON envelopes shared by every HTTP handler.
package api

// ErrorResponse is returned for any non-2xx answer that carries a message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges an operation without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}
