// Package api defines the shared HTTP response envelopes used by all handlers.
package api

// ErrorResponse is the body returned for every failed request.
// It carries a generic client-facing message; internal detail stays in the logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for successful requests without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
