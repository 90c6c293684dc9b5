// Package envelope defines the request and response wrappers every resident
// API speaks, both inbound and towards the platform services.
package envelope

import "time"

// TimeLayout is the UTC timestamp format used in requesttime and responsetime.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// ServiceError is one entry of a response's errors list.
type ServiceError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// MainRequest wraps a request payload.
type MainRequest[T any] struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	RequestTime string `json:"requesttime"`
	Request     T      `json:"request"`
}

// ResponseWrapper wraps a response payload. Errors is empty on success.
type ResponseWrapper[T any] struct {
	ID           string         `json:"id"`
	Version      string         `json:"version"`
	ResponseTime string         `json:"responsetime"`
	Response     T              `json:"response"`
	Errors       []ServiceError `json:"errors"`
}

// NewResponse builds a successful wrapper stamped with now.
func NewResponse[T any](id, version string, now time.Time, response T) *ResponseWrapper[T] {
	return &ResponseWrapper[T]{
		ID:           id,
		Version:      version,
		ResponseTime: FormatTime(now),
		Response:     response,
		Errors:       []ServiceError{},
	}
}

// NewErrorResponse builds a wrapper carrying a single error.
func NewErrorResponse(id, version string, now time.Time, code, message string) *ResponseWrapper[any] {
	return &ResponseWrapper[any]{
		ID:           id,
		Version:      version,
		ResponseTime: FormatTime(now),
		Errors:       []ServiceError{{ErrorCode: code, Message: message}},
	}
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FirstError returns the first error in errs, if any.
func FirstError(errs []ServiceError) (ServiceError, bool) {
	if len(errs) == 0 {
		return ServiceError{}, false
	}
	return errs[0], true
}
