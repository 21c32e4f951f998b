package client

import (
	"errors"
	"fmt"
)

// APIError is the uniform shape every transport or server failure is
// normalized to before it reaches the caller.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// serverErrorBody matches the backend's error envelope.
type serverErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

// Pre-flight business-rule errors. These are raised by client-side guard
// checks before any network call is made.
var (
	ErrInsufficientFunds = errors.New("insufficient balance for this purchase")
	ErrOutOfStock        = errors.New("not enough stock for this purchase")
	ErrGameUnavailable   = errors.New("game is not available for purchase")
	ErrNotAuthenticated  = errors.New("no authenticated session")
)
