package fraction

import (
	"math/big"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Fraction is an exact rational number over arbitrary-precision integers.
//
// A Fraction is immutable: every operation returns a new value and the
// underlying integers are never shared with callers. The denominator is
// always positive, so the sign lives in the numerator. The zero value is 0/1.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// New creates num/den without reducing it.
// It fails with ErrDivideByZero when den is zero. A negative denominator
// is normalized by negating both operands.
func New(num, den *big.Int) (Fraction, error) {
	if den == nil || den.Sign() == 0 {
		return Fraction{}, ErrDivideByZero
	}

	n := new(big.Int)
	if num != nil {
		n.Set(num)
	}
	d := new(big.Int).Set(den)

	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}

	return Fraction{num: n, den: d}, nil
}

// FromInt returns the integer fraction n/1.
func FromInt(n *big.Int) Fraction {
	num := new(big.Int)
	if n != nil {
		num.Set(n)
	}
	return Fraction{num: num, den: big.NewInt(1)}
}

// FromInt64 returns the integer fraction n/1.
func FromInt64(n int64) Fraction {
	return Fraction{num: big.NewInt(n), den: big.NewInt(1)}
}

// Zero returns 0/1.
func Zero() Fraction {
	return FromInt64(0)
}

// One returns 1/1.
func One() Fraction {
	return FromInt64(1)
}

func (f Fraction) n() *big.Int {
	if f.num == nil {
		return bigZero
	}
	return f.num
}

func (f Fraction) d() *big.Int {
	if f.den == nil {
		return bigOne
	}
	return f.den
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int {
	return new(big.Int).Set(f.n())
}

// Den returns a copy of the denominator. It is always positive.
func (f Fraction) Den() *big.Int {
	return new(big.Int).Set(f.d())
}

// Simplify returns f reduced to lowest terms.
// gcd(0, d) = d, so a zero numerator reduces to 0/1.
func (f Fraction) Simplify() Fraction {
	num, den := f.n(), f.d()

	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)

	return Fraction{
		num: new(big.Int).Quo(num, g),
		den: new(big.Int).Quo(den, g),
	}
}

// Add returns f + g in lowest terms.
func (f Fraction) Add(g Fraction) Fraction {
	num := new(big.Int).Mul(f.n(), g.d())
	num.Add(num, new(big.Int).Mul(g.n(), f.d()))

	den := new(big.Int).Mul(f.d(), g.d())

	return Fraction{num: num, den: den}.Simplify()
}

// Mul returns f * g in lowest terms.
func (f Fraction) Mul(g Fraction) Fraction {
	num := new(big.Int).Mul(f.n(), g.n())
	den := new(big.Int).Mul(f.d(), g.d())

	return Fraction{num: num, den: den}.Simplify()
}

// Neg returns -f. The result is not reduced.
func (f Fraction) Neg() Fraction {
	return Fraction{
		num: new(big.Int).Neg(f.n()),
		den: new(big.Int).Set(f.d()),
	}
}

// Sub returns f - g in lowest terms.
func (f Fraction) Sub(g Fraction) Fraction {
	return f.Add(g.Neg())
}

// Reciprocal returns den/num. It fails with ErrDivideByZero when f is zero.
func (f Fraction) Reciprocal() (Fraction, error) {
	return New(f.d(), f.n())
}

// Quo returns f / g in lowest terms. It fails with ErrDivideByZero when g is zero.
func (f Fraction) Quo(g Fraction) (Fraction, error) {
	inv, err := g.Reciprocal()
	if err != nil {
		return Fraction{}, err
	}
	return f.Mul(inv), nil
}

// Abs returns |f|.
func (f Fraction) Abs() Fraction {
	return Fraction{
		num: new(big.Int).Abs(f.n()),
		den: new(big.Int).Set(f.d()),
	}
}

// Sign returns -1, 0 or +1 depending on the sign of f.
func (f Fraction) Sign() int {
	return f.n().Sign()
}

// IsZero reports whether f == 0.
func (f Fraction) IsZero() bool {
	return f.n().Sign() == 0
}

// IsInt reports whether f is an integer, that is whether den divides num.
func (f Fraction) IsInt() bool {
	d := f.d()
	if d.Cmp(bigOne) == 0 {
		return true
	}
	return new(big.Int).Rem(f.n(), d).Sign() == 0
}

// Cmp compares f and g by value and returns -1, 0 or +1.
func (f Fraction) Cmp(g Fraction) int {
	// denominators are positive, so cross multiplication keeps the order
	left := new(big.Int).Mul(f.n(), g.d())
	right := new(big.Int).Mul(g.n(), f.d())
	return left.Cmp(right)
}

// Equal reports whether f and g denote the same rational number,
// whether or not either is reduced.
func (f Fraction) Equal(g Fraction) bool {
	return f.Cmp(g) == 0
}

// String renders f as "num/den", or as a bare integer when den is 1.
// A zero numerator always renders as "0".
func (f Fraction) String() string {
	num, den := f.n(), f.d()

	if num.Sign() == 0 {
		return "0"
	}

	if den.Cmp(bigOne) == 0 {
		return num.String()
	}

	return num.String() + "/" + den.String()
}
