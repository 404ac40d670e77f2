package fraction

import "errors"

// ErrDivideByZero is returned when a fraction would get a zero denominator.
var ErrDivideByZero = errors.New("fraction: divide by zero")
