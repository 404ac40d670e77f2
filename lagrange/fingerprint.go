package lagrange

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex-encoded BLAKE3 digest of the reduced coefficients.
// Two polynomials with equal coefficients have the same fingerprint,
// regardless of how the coefficients were reduced.
//
// Encoding: count(4) | [sign(1) | numLen(4) | |num| | denLen(4) | den]...
func (p *Polynomial) Fingerprint() string {
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(p.coefficients)))

	for _, c := range p.coefficients {
		c = c.Simplify()

		// sign bytes: 0 negative, 1 zero, 2 positive
		buf = append(buf, byte(c.Sign()+1))

		num := c.Num().Bytes()
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(num)))
		buf = append(buf, num...)

		den := c.Den().Bytes()
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(den)))
		buf = append(buf, den...)
	}

	sum := blake3.Sum256(buf)

	return hex.EncodeToString(sum[:])
}
