// Package commons holds the response envelope shared by all endpoints.
package commons

// Response is the uniform JSON envelope: success flag, human message, and
// either the payload or the error details.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, details ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  details,
	}
}
