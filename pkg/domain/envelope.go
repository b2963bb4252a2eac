package domain

import "fmt"

// FallbackMessage is shown when a failed envelope carries no message of its
// own. Interaction layers should never surface an empty failure.
const FallbackMessage = "Something went wrong. Please try again."

// Envelope is the uniform result wrapper returned by every service facade
// operation, in every backend mode. Callers branch on Success only; no
// facade method ever lets a transport error escape as a Go error.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK wraps a successful result.
func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// Fail wraps a failure with a human-readable message.
func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Success: false, Message: message}
}

// Failf wraps a failure with a formatted message.
func Failf[T any](format string, args ...any) Envelope[T] {
	return Envelope[T]{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Reason returns the envelope message, or FallbackMessage when the backend
// supplied none.
func (e Envelope[T]) Reason() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}
