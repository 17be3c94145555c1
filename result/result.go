// Package result provides an explicit found/not-found wrapper for lookups
// whose absence is an expected outcome rather than an error.
package result

// Result holds either a value or nothing. The zero value is NotFound.
type Result[T any] struct {
	value T
	found bool
}

// Found wraps v as a present result.
func Found[T any](v T) Result[T] {
	return Result[T]{value: v, found: true}
}

// NotFound returns an absent result.
func NotFound[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.found
}

func (r Result[T]) IsFound() bool {
	return r.found
}
