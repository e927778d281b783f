// prf.go - Seeded, budget-limited pseudorandom byte stream.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package prf implements the keyed pseudorandom byte stream used to derive
// secret keys and error vectors from a seed.  The stream is produced one
// block at a time by an underlying primitive (AES-256 in counter mode,
// SHAKE256, or ChaCha20), and the total number of primitive invocations is
// capped at construction time.
package prf

import "github.com/pkg/errors"

const (
	// SeedSize is the size of a seed in bytes.
	SeedSize = 32

	// MaxInvocations is the largest invocation budget a State accepts.
	MaxInvocations = 1<<32 - 1

	// shake256Rate is the SHAKE256 block size in bytes.
	shake256Rate = 136

	maxBlockSize = shake256Rate
)

var (
	// ErrInitFail is the error returned when a State can not be initialized.
	ErrInitFail = errors.New("prf: initialization failed")

	// ErrExhausted is the error returned when the invocation budget of a
	// State has been used up.
	ErrExhausted = errors.New("prf: invocation budget exhausted")
)

// Primitive selects the keyed primitive backing a State.
type Primitive int

const (
	// AES256CTR is AES-256 in counter mode, keyed by the seed.
	AES256CTR Primitive = iota

	// SHAKE256 absorbs the seed and squeezes rate sized blocks.
	SHAKE256

	// ChaCha20 is the ChaCha20 keystream, keyed by the seed.
	ChaCha20
)

func (p Primitive) String() string {
	switch p {
	case AES256CTR:
		return "aes256-ctr"
	case SHAKE256:
		return "shake256"
	case ChaCha20:
		return "chacha20"
	default:
		return "unknown"
	}
}

// Seed is the key material a State is derived from.
type Seed [SeedSize]byte

type generator interface {
	blockSize() int
	nextBlock(out []byte)
	reset()
}

// State is a PRF instance.  A State is owned by a single caller and must be
// erased with Erase once it is no longer needed, on every exit path.
type State struct {
	g generator

	buf       [maxBlockSize]byte
	blockSize int
	pos       int

	remInvocations uint64
}

// New derives a State from seed using primitive p, allowing at most
// maxInvocations calls to the underlying primitive.
func New(p Primitive, seed *Seed, maxInvocations uint64) (*State, error) {
	if maxInvocations == 0 || maxInvocations > MaxInvocations {
		return nil, errors.Wrapf(ErrInitFail, "invocation budget %d", maxInvocations)
	}

	var (
		g   generator
		err error
	)
	switch p {
	case AES256CTR:
		g, err = newAESCTR(seed)
	case SHAKE256:
		g = newSHAKE(seed)
	case ChaCha20:
		g, err = newChaCha(seed)
	default:
		err = errors.Errorf("unsupported primitive %d", int(p))
	}
	if err != nil {
		return nil, errors.Wrap(ErrInitFail, err.Error())
	}

	s := &State{
		g:              g,
		blockSize:      g.blockSize(),
		remInvocations: maxInvocations,
	}

	// Force the first read to produce fresh output.
	s.pos = s.blockSize

	return s, nil
}

// RemainingInvocations returns the number of primitive invocations left.
func (s *State) RemainingInvocations() uint64 {
	return s.remInvocations
}

func (s *State) invoke(out []byte) error {
	if s.remInvocations == 0 {
		return ErrExhausted
	}
	s.g.nextBlock(out)
	s.remInvocations--
	return nil
}

// Read fills out with the next len(out) bytes of the stream.  Buffered bytes
// are served first, whole blocks are written directly into out, and the
// internal buffer is only refilled when a partial block is still needed, so
// a budget of N invocations yields exactly N blocks of output.
func (s *State) Read(out []byte) (int, error) {
	n := 0
	for n < len(out) {
		if s.pos == s.blockSize {
			if len(out)-n >= s.blockSize {
				if err := s.invoke(out[n : n+s.blockSize]); err != nil {
					return n, err
				}
				n += s.blockSize
				continue
			}
			if err := s.invoke(s.buf[:s.blockSize]); err != nil {
				return n, err
			}
			s.pos = 0
		}
		c := copy(out[n:], s.buf[s.pos:s.blockSize])
		s.pos += c
		n += c
	}
	return n, nil
}

// Erase overwrites the buffered output and the primitive state, and the State
// is unusable afterwards.  The SHAKE256 and ChaCha20 key material is zeroed.
// For AES256CTR the expanded key lives inside crypto/aes, which offers no
// way to scrub it, so Erase only releases the last reference to it.
func (s *State) Erase() {
	if s.g != nil {
		s.g.reset()
		s.g = nil
	}
	memwipe(s.buf[:])
	s.blockSize = 0
	s.pos = 0
	s.remInvocations = 0
}

func memwipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
