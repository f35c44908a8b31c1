package backend

import (
	"context"
	"errors"
	"strings"
)

const (
	// TransportErrorMessage is shown for any failure that produced no usable response.
	TransportErrorMessage = "An error occurred while generating or executing the SQL."
	// ValidationMessage is the blocking warning for a blank question.
	ValidationMessage = "Please enter a question!"
)

// ErrEmptyQuestion is returned for a blank question; no request is sent.
var ErrEmptyQuestion = errors.New("question is empty")

// Request is the body sent to the generation endpoint
type Request struct {
	Question string `json:"question"`
}

// Response is the body returned by the generation endpoint. Every field is optional.
type Response struct {
	SQL     string   `json:"sql,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// HasResult reports whether both columns and rows were present in the response
func (r *Response) HasResult() bool {
	return r.Columns != nil && r.Rows != nil
}

// Generator turns a question into SQL and, optionally, its result set
type Generator interface {
	Generate(ctx context.Context, question string) (*Response, error)
}

// Validate checks the precondition for a submission
func Validate(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

// ServiceError is an error reported by the backend in a well-formed response
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// TransportError means no usable response was received
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage maps any generation error to the text shown to the user
func UserMessage(err error) string {
	var serviceErr *ServiceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuestion):
		return ValidationMessage
	case errors.As(err, &serviceErr):
		return serviceErr.Message
	default:
		return TransportErrorMessage
	}
}
