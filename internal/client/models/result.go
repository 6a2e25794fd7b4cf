package models

// Result is the envelope every domain operation returns. Transport errors,
// rejected requests and local validation failures all become
// Success == false with a human-readable Message.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
}

// Ok builds a successful result.
func Ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

// Fail builds a failed result with the zero value of T.
func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// Empty is the payload of operations that return no data.
type Empty struct{}
