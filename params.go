// params.go - BIKE parameters.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import "github.com/pkg/errors"

const (
	// Widest SIMD step: 8 ZMM registers of 8 quadwords each.  The padded
	// length of every dense vector is a multiple of this, which is also a
	// multiple of the 4 YMM x 4 quadword AVX2 step.
	zmmQwords   = 8
	numZmms     = 8
	zmmsQwords  = zmmQwords * numZmms
	blockQwords = zmmsQwords
	blockBits   = blockQwords * 64

	// maxWeight is the largest weight (D or T) of any parameter set, and
	// bounds the size of every index list.
	maxWeight = 264

	maxRBits = 1 << 20
)

// ErrInvalidParams is the error returned when a parameter set is
// inconsistent.
var ErrInvalidParams = errors.New("bike: invalid parameters")

// Params is a BIKE parameter set.
type Params struct {
	// Name is a human readable label.
	Name string

	// RBits is the length of each half of the code (R), in bits.
	RBits uint32

	// D is the weight of each half of the secret key.
	D uint32

	// T is the weight of the error vector.
	T uint32

	// MaxRandIndicesT is the fixed number of draws the fixed-iteration
	// sampler performs to collect T distinct error positions.
	MaxRandIndicesT uint32
}

var (
	// Level1 is the NIST security level 1 parameter set.
	Level1 = Params{
		Name:            "BIKE-L1",
		RBits:           12323,
		D:               71,
		T:               134,
		MaxRandIndicesT: 271,
	}

	// Level3 is the NIST security level 3 parameter set.
	Level3 = Params{
		Name:            "BIKE-L3",
		RBits:           24659,
		D:               103,
		T:               199,
		MaxRandIndicesT: 373,
	}

	// Level5 is the NIST security level 5 parameter set.
	Level5 = Params{
		Name:            "BIKE-L5",
		RBits:           40973,
		D:               137,
		T:               264,
		MaxRandIndicesT: 605,
	}
)

// Validate checks that the parameter set is usable.
func (p *Params) Validate() error {
	switch {
	case p == nil:
		return errors.Wrap(ErrInvalidParams, "nil params")
	case p.RBits == 0 || p.RBits > maxRBits:
		return errors.Wrapf(ErrInvalidParams, "R=%d out of range", p.RBits)
	case p.D == 0 || p.D > maxWeight || p.D > p.RBits:
		return errors.Wrapf(ErrInvalidParams, "D=%d out of range", p.D)
	case p.T == 0 || p.T > maxWeight || p.T > p.NBits():
		return errors.Wrapf(ErrInvalidParams, "T=%d out of range", p.T)
	case p.MaxRandIndicesT < p.T:
		return errors.Wrapf(ErrInvalidParams, "MaxRandIndicesT=%d smaller than T=%d", p.MaxRandIndicesT, p.T)
	}
	return nil
}

// NBits returns the length of the whole code (2R), in bits.
func (p *Params) NBits() uint32 {
	return 2 * p.RBits
}

// RBytes returns the number of bytes needed to hold R bits.
func (p *Params) RBytes() int {
	return int(p.RBits+7) / 8
}

// lastRByteMask masks the valid bits of the most significant byte.
func (p *Params) lastRByteMask() byte {
	return byte(uint32(1)<<(p.RBits+8-uint32(p.RBytes())*8) - 1)
}

// paddedQwords is the number of quadwords of a dense vector, rounded up to
// a whole number of SIMD steps.
func (p *Params) paddedQwords() int {
	return blockQwords * ((int(p.RBits) + blockBits - 1) / blockBits)
}
