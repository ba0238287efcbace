package rwerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternalError     = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInvalidTransition is returned when a status transition is not allowed.
	ErrInvalidTransition = New(fiber.StatusConflict, CodeInvalidTransition, "requested status transition is not allowed")

	// ErrUnauthorized is returned when an admin request carries a missing or invalid key.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "missing or invalid admin key")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

type RoadWatchError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *RoadWatchError {
	return &RoadWatchError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e RoadWatchError) Msg(format string, parts ...interface{}) *RoadWatchError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e RoadWatchError) WithExtras(extras Extras) *RoadWatchError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *RoadWatchError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *RoadWatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
