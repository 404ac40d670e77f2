package polyformat

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vitalvas/polyrecon/fraction"
	"github.com/vitalvas/polyrecon/lagrange"
)

// Polynomial renders coefficients (constant term first) as
// "f(x) = <highest term> + ... + <constant>".
//
// Zero terms are skipped, a coefficient of magnitude 1 on a non-constant
// term is written as a bare x, and the zero polynomial renders as "f(x) = 0".
func Polynomial(coefficients []fraction.Fraction) string {
	var b strings.Builder
	b.WriteString("f(x) = ")

	first := true

	for i := len(coefficients) - 1; i >= 0; i-- {
		c := coefficients[i].Simplify()
		if c.IsZero() {
			continue
		}

		switch {
		case first && c.Sign() < 0:
			b.WriteString("-")
		case !first && c.Sign() < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}

		abs := c.Abs()
		if i == 0 || !abs.Equal(fraction.One()) {
			b.WriteString(abs.String())
		}

		if i > 0 {
			b.WriteString("x")
			if i > 1 {
				b.WriteString("^" + strconv.Itoa(i))
			}
		}

		first = false
	}

	if first {
		b.WriteString("0")
	}

	return b.String()
}

// Constant renders the simplified constant term as "Constant c = <value>".
func Constant(coefficients []fraction.Fraction) string {
	c := fraction.Zero()
	if len(coefficients) > 0 {
		c = coefficients[0].Simplify()
	}

	return "Constant c = " + c.String()
}

// Write prints the polynomial line followed by the constant line.
func Write(w io.Writer, coefficients []fraction.Fraction) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", Polynomial(coefficients), Constant(coefficients))
	return err
}

type document struct {
	Polynomial   string   `json:"polynomial"`
	Degree       int      `json:"degree"`
	Coefficients []string `json:"coefficients"`
	Constant     string   `json:"constant"`
	Integral     bool     `json:"integral"`
	Fingerprint  string   `json:"fingerprint"`
}

// JSON writes p as an indented JSON document. Coefficients are strings,
// constant term first, so that arbitrary precision survives any decoder.
func JSON(w io.Writer, p *lagrange.Polynomial) error {
	coefficients := p.Coefficients()

	doc := document{
		Polynomial:   Polynomial(coefficients),
		Degree:       p.Degree(),
		Coefficients: make([]string, len(coefficients)),
		Constant:     p.Constant().String(),
		Integral:     p.IsIntegral(),
		Fingerprint:  p.Fingerprint(),
	}

	for i, c := range coefficients {
		doc.Coefficients[i] = c.Simplify().String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode polynomial: %w", err)
	}

	return nil
}
