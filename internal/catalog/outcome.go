package catalog

import "fmt"

// Status is the three-way result of a provider query.
type Status int

const (
	// StatusUnavailable means the source failed: network or decode errors, or
	// required fields missing from the response.
	StatusUnavailable Status = iota
	// StatusEmpty means the source answered but had no matching records.
	StatusEmpty
	// StatusFound means Value holds data.
	StatusFound
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusEmpty:
		return "empty"
	default:
		return "unavailable"
	}
}

// Outcome carries a query result and how it was obtained.
type Outcome[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Found wraps data.
func Found[T any](value T) Outcome[T] {
	return Outcome[T]{Status: StatusFound, Value: value}
}

// Empty reports a reachable source with no matches.
func Empty[T any]() Outcome[T] {
	return Outcome[T]{Status: StatusEmpty}
}

// Unavailable reports a source failure.
func Unavailable[T any](err error) Outcome[T] {
	if err == nil {
		err = fmt.Errorf("source unavailable")
	}
	return Outcome[T]{Status: StatusUnavailable, Err: err}
}

// FoundList returns Found when items is non-empty and Empty otherwise.
func FoundList[T any](items []T) Outcome[[]T] {
	if len(items) == 0 {
		return Empty[[]T]()
	}
	return Found(items)
}

// OK reports whether the outcome holds data.
func (o Outcome[T]) OK() bool {
	return o.Status == StatusFound
}
