package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork means the request never produced a usable response.
	ErrNetwork = errors.New("network failure")
	// ErrServer means the backend answered with a non-2xx status or success:false.
	ErrServer = errors.New("server error")
)

// ServerError carries the status and message of a rejected request.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrServer, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrServer, e.Status, e.Message)
}

func (e *ServerError) Unwrap() error { return ErrServer }

// ServerMessage returns the backend supplied message carried by err, if any.
func ServerMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
