// bike.go - BIKE secret sampling interface.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package bike implements the sampling core of the BIKE QC-MDPC key
// encapsulation mechanism: deriving the sparse secret key (h0, h1) and the
// error vector (e0, e1) from a seed, in time that does not depend on the
// secret values produced.
//
// The dense vector packer and the fixed-iteration error sampler come in
// portable, AVX2 shaped and AVX512 shaped variants that produce identical
// output.  The variant is picked once per process from the CPU capabilities.
//
// For more information see: https://bikesuite.org
//
package bike

import (
	"crypto/rand"
	"io"

	"gitlab.com/yawning/bike.git/prf"
)

// SeedSize is the length of a Seed in bytes.
const SeedSize = prf.SeedSize

// Seed is the secret all key and error material is derived from.
type Seed = prf.Seed

// GenerateSeed returns a new Seed read from the given reader, which must
// return random data.  If rand is nil, crypto/rand.Reader is used.
func GenerateSeed(rand io.Reader) (*Seed, error) {
	if rand == nil {
		rand = defaultRand
	}
	seed := new(Seed)
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return seed, nil
}

var defaultRand = rand.Reader

// SecretKey is the sparse secret key: two dense vectors of weight D, and the
// index lists they were built from.
type SecretKey struct {
	H0, H1 *BitVector

	H0Indices, H1Indices IndexList
}

// Reset scrubs the secret key.
func (sk *SecretKey) Reset() {
	sk.H0.Reset()
	sk.H1.Reset()
	sk.H0Indices.Reset()
	sk.H1Indices.Reset()
}

// ErrorVector is an error vector of weight T, split into its two halves.
type ErrorVector struct {
	E0, E1 *BitVector
}

// Reset scrubs the error vector.
func (e *ErrorVector) Reset() {
	e.E0.Reset()
	e.E1.Reset()
}
