package house

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ErrHouseNotFound is returned when a house id is unknown
type ErrHouseNotFound struct {
	ID ID
}

func (e *ErrHouseNotFound) Error() string {
	return fmt.Sprintf("house not found: %d", e.ID)
}

// Unwrap exposes the not-found kind to shared.IsKind.
func (e *ErrHouseNotFound) Unwrap() error {
	return shared.NewDomainError(shared.KindNotFound, e.Error())
}

var (
	errNotActivated     = shared.NewDomainError(shared.KindLifecycle, "house is not activated")
	errAlreadyActivated = shared.NewDomainError(shared.KindStateConflict, "house is already activated")
	errDead             = shared.NewDomainError(shared.KindLifecycle, "house is dead")
)

// ErrNotActivated reports an operation against a house that was never activated
func ErrNotActivated() error { return errNotActivated }

// ErrDead reports an operation against a house that reached its harvest limit
func ErrDead() error { return errDead }

func conflict(format string, args ...interface{}) error {
	return shared.Errorf(shared.KindStateConflict, format, args...)
}

func bounds(format string, args ...interface{}) error {
	return shared.Errorf(shared.KindBounds, format, args...)
}

func dependency(format string, args ...interface{}) error {
	return shared.Errorf(shared.KindDependency, format, args...)
}

func invalid(format string, args ...interface{}) error {
	return shared.Errorf(shared.KindInvalidArgument, format, args...)
}
