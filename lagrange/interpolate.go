package lagrange

import (
	"context"
	"errors"
	"math/big"

	"github.com/vitalvas/polyrecon/fraction"
)

type options struct {
	workers int
}

// Option tunes InterpolateContext.
type Option func(*options)

// WithWorkers computes up to n sample contributions concurrently.
// Values below 2 keep the computation on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Interpolate returns the unique polynomial of degree at most len(points)-1
// passing through every point, with exact rational coefficients.
//
// The x-coordinates must be pairwise distinct; a collision fails with a
// *DuplicateXError wrapping fraction.ErrDivideByZero and no partial result.
func Interpolate(points []Point) (*Polynomial, error) {
	return InterpolateContext(context.Background(), points)
}

// InterpolateContext is Interpolate with cancellation and options.
// The result does not depend on the number of workers.
func InterpolateContext(ctx context.Context, points []Point, opts ...Option) (*Polynomial, error) {
	o := &options{workers: 1}
	for _, opt := range opts {
		opt(o)
	}

	if err := validatePoints(points); err != nil {
		return nil, err
	}

	var (
		contributions [][]fraction.Fraction
		err           error
	)

	if o.workers > 1 && len(points) > 1 {
		contributions, err = contributeParallel(ctx, points, o.workers)
	} else {
		contributions, err = contributeSequential(ctx, points)
	}
	if err != nil {
		return nil, err
	}

	// fold in sample order
	total := make([]fraction.Fraction, len(points))
	for d := range total {
		total[d] = fraction.Zero()
	}

	for _, basis := range contributions {
		for d, c := range basis {
			total[d] = total[d].Add(c)
		}
	}

	return newPolynomial(total), nil
}

func contributeSequential(ctx context.Context, points []Point) ([][]fraction.Fraction, error) {
	contributions := make([][]fraction.Fraction, len(points))

	for i := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		basis, err := contribution(points, i)
		if err != nil {
			return nil, err
		}
		contributions[i] = basis
	}

	return contributions, nil
}

func contributeParallel(ctx context.Context, points []Point, workers int) ([][]fraction.Fraction, error) {
	contributions := make([][]fraction.Fraction, len(points))

	g, gctx := newGroup(ctx, workers)

	for i := range points {
		if gctx.Err() != nil {
			break
		}

		g.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			basis, err := contribution(points, i)
			if err != nil {
				return err
			}
			contributions[i] = basis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// the parent may have been cancelled before any work was scheduled
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return contributions, nil
}

// contribution returns scale_i * L_i(x) as a dense vector of len(points)
// coefficients, where L_i(x) = prod_{j != i} (x - x_j) and
// scale_i = y_i / prod_{j != i} (x_i - x_j).
func contribution(points []Point, i int) ([]fraction.Fraction, error) {
	xi := points[i].X

	basis := []fraction.Fraction{fraction.One()}
	denom := fraction.One()

	for j, p := range points {
		if j == i {
			continue
		}

		negXj := fraction.FromInt(new(big.Int).Neg(p.X))

		// multiply the running basis by (x - x_j)
		next := make([]fraction.Fraction, len(basis)+1)
		for d := range next {
			next[d] = fraction.Zero()
		}
		for d, c := range basis {
			next[d+1] = next[d+1].Add(c)
			next[d] = next[d].Add(c.Mul(negXj))
		}
		basis = next

		denom = denom.Mul(fraction.FromInt(new(big.Int).Sub(xi, p.X)))
	}

	// denom is an integer n/1, so its reciprocal is 1/n
	inv, err := denom.Reciprocal()
	if err != nil {
		if errors.Is(err, fraction.ErrDivideByZero) {
			return nil, duplicateX(points, i)
		}
		return nil, err
	}

	scale := fraction.FromInt(points[i].Y).Mul(inv)

	for d := range basis {
		basis[d] = basis[d].Mul(scale)
	}

	return basis, nil
}

func duplicateX(points []Point, i int) error {
	for j, p := range points {
		if j != i && p.X.Cmp(points[i].X) == 0 {
			first, second := min(i, j), max(i, j)
			return &DuplicateXError{
				X:      new(big.Int).Set(points[i].X),
				First:  first,
				Second: second,
			}
		}
	}

	return fraction.ErrDivideByZero
}
