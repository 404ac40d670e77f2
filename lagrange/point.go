package lagrange

import (
	"fmt"
	"math/big"
)

// Point is a single decoded sample of the polynomial.
type Point struct {
	X *big.Int
	Y *big.Int
}

// NewPoint is a shorthand for small integer samples.
func NewPoint(x, y int64) Point {
	return Point{X: big.NewInt(x), Y: big.NewInt(y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

func validatePoints(points []Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}

	for i, p := range points {
		if p.X == nil || p.Y == nil {
			return fmt.Errorf("point %d: %w", i, ErrNilCoordinate)
		}
	}

	return nil
}
