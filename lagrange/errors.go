package lagrange

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vitalvas/polyrecon/fraction"
)

var (
	// ErrNoPoints is returned when interpolation is asked for an empty point set.
	ErrNoPoints = errors.New("lagrange: no points to interpolate")

	// ErrNilCoordinate is returned when a point is missing its x or y value.
	ErrNilCoordinate = errors.New("lagrange: point has a nil coordinate")
)

// DuplicateXError reports two samples sharing an x-coordinate.
// It unwraps to fraction.ErrDivideByZero, which is how the collision surfaces
// inside the basis denominator.
type DuplicateXError struct {
	X      *big.Int
	First  int
	Second int
}

func (e *DuplicateXError) Error() string {
	return fmt.Sprintf("lagrange: points %d and %d share x = %s: %v", e.First, e.Second, e.X, fraction.ErrDivideByZero)
}

func (e *DuplicateXError) Unwrap() error {
	return fraction.ErrDivideByZero
}
