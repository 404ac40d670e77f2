package lagrange

import (
	"github.com/google/go-cmp/cmp"

	"github.com/vitalvas/polyrecon/fraction"
)

// Polynomial is an immutable dense coefficient vector.
// coefficients[i] is the coefficient of x^i, so coefficients[0] is the constant term.
type Polynomial struct {
	coefficients []fraction.Fraction
}

// newPolynomial takes ownership of coefficients.
func newPolynomial(coefficients []fraction.Fraction) *Polynomial {
	return &Polynomial{coefficients: coefficients}
}

// Len returns the number of coefficients, which is the number of samples
// the polynomial was reconstructed from.
func (p *Polynomial) Len() int {
	return len(p.coefficients)
}

// Coefficients returns a copy of the coefficient vector, constant term first.
func (p *Polynomial) Coefficients() []fraction.Fraction {
	out := make([]fraction.Fraction, len(p.coefficients))
	copy(out, p.coefficients)
	return out
}

// Coefficient returns the coefficient of x^i, or zero when i is out of range.
func (p *Polynomial) Coefficient(i int) fraction.Fraction {
	if i < 0 || i >= len(p.coefficients) {
		return fraction.Zero()
	}
	return p.coefficients[i]
}

// Constant returns the simplified constant term f(0).
func (p *Polynomial) Constant() fraction.Fraction {
	return p.Coefficient(0).Simplify()
}

// Degree returns the index of the highest non-zero coefficient,
// or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if !p.coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// IsIntegral reports whether every coefficient is an integer.
func (p *Polynomial) IsIntegral() bool {
	for _, c := range p.coefficients {
		if !c.IsInt() {
			return false
		}
	}
	return true
}

// Equal reports whether both polynomials have the same length and
// pairwise equal coefficients.
func (p *Polynomial) Equal(other *Polynomial) bool {
	if p == nil || other == nil {
		return p == other
	}

	return cmp.Equal(p.coefficients, other.coefficients, cmp.Comparer(fraction.Fraction.Equal))
}
