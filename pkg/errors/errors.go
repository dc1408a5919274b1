// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package errors provides typed errors for repo-summarizer
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrPlatform indicates an upstream API error (GitHub returned something unexpected)
	ErrPlatform
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrTimeout indicates a timeout occurred
	ErrTimeout
	// ErrRateLimit indicates the upstream API rate limit was hit
	ErrRateLimit
	// ErrNotFound indicates the repository does not exist or is private
	ErrNotFound
	// ErrPermission indicates access was denied
	ErrPermission
	// ErrEmpty indicates the repository has nothing to summarize
	ErrEmpty
	// ErrLLM indicates the language model call failed
	ErrLLM
	// ErrInternal indicates a bug or an unexpected failure
	ErrInternal
)

// Error is the base error type for all repo-summarizer errors
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var typed *Error
	if err == nil {
		return false
	}
	if errors.As(err, &typed) {
		return typed.Type == errType
	}
	return false
}

// TypeOf returns the type of the first *Error in the chain.
func TypeOf(err error) (ErrorType, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type, true
	}
	return 0, false
}

// IsRetryable returns true if the error is transient and retryable.
// Rate limits are not retryable: the reset window is usually minutes away.
func IsRetryable(err error) bool {
	var typed *Error
	if !errors.As(err, &typed) {
		return false
	}

	switch typed.Type {
	case ErrPlatform, ErrTimeout:
		return true
	default:
		return false
	}
}

// HTTPStatus maps an error to the status code the HTTP layer should answer with.
func HTTPStatus(err error) int {
	errType, ok := TypeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch errType {
	case ErrValidation, ErrEmpty:
		return http.StatusBadRequest
	case ErrRateLimit, ErrPermission:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrPlatform, ErrLLM, ErrTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message of a typed error, falling back to err.Error().
func Message(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Message
	}
	return err.Error()
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrPlatform:
		return "PLATFORM"
	case ErrValidation:
		return "VALIDATION"
	case ErrTimeout:
		return "TIMEOUT"
	case ErrRateLimit:
		return "RATE_LIMIT"
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrPermission:
		return "PERMISSION"
	case ErrEmpty:
		return "EMPTY"
	case ErrLLM:
		return "LLM"
	case ErrInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(ErrConfig, message, cause)
}

// PlatformError creates a platform error
func PlatformError(message string, cause error) *Error {
	return New(ErrPlatform, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *Error {
	return New(ErrValidation, message, cause)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *Error {
	return New(ErrTimeout, message, cause)
}

// RateLimitError creates a rate limit error
func RateLimitError(message string, cause error) *Error {
	return New(ErrRateLimit, message, cause)
}

// NotFoundError creates a not-found error
func NotFoundError(message string, cause error) *Error {
	return New(ErrNotFound, message, cause)
}

// PermissionError creates a permission error
func PermissionError(message string, cause error) *Error {
	return New(ErrPermission, message, cause)
}

// EmptyError creates a nothing-to-summarize error
func EmptyError(message string) *Error {
	return New(ErrEmpty, message, nil)
}

// LLMError creates a language model error
func LLMError(message string, cause error) *Error {
	return New(ErrLLM, message, cause)
}

// InternalError creates an internal error
func InternalError(message string, cause error) *Error {
	return New(ErrInternal, message, cause)
}
