package userstore

import "fmt"

// NotFoundError is returned when an id-keyed operation finds no matching
// record. It is the only error kind the store produces.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.ID)
}
