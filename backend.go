// backend.go - CPU dependent sampling backends.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"io"
	"sync"

	"gitlab.com/yawning/bike.git/internal/cpu"
)

// Backend identifies an implementation of the bit packer and the
// fixed-iteration error sampler.  All backends produce identical output.
type Backend int

const (
	// BackendAuto picks the fastest backend the CPU supports.
	BackendAuto Backend = iota

	// BackendPortable is the plain 64 bit word implementation.
	BackendPortable

	// BackendAVX2 processes 256 bit lanes.
	BackendAVX2

	// BackendAVX512 processes 512 bit lanes.
	BackendAVX512
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendPortable:
		return "portable"
	case BackendAVX2:
		return "avx2"
	case BackendAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

type backend interface {
	id() Backend
	secureSetBits(r []uint64, firstPos uint32, wlist []uint32)
	sampleErrorIndices(out []uint32, z uint32, draws int, rnd io.Reader) error
}

type portableBackend struct{}

func (portableBackend) id() Backend { return BackendPortable }

func (portableBackend) secureSetBits(r []uint64, firstPos uint32, wlist []uint32) {
	setBitsPortable(r, firstPos, wlist)
}

func (portableBackend) sampleErrorIndices(out []uint32, z uint32, draws int, rnd io.Reader) error {
	return sampleErrorIndicesPortable(out, z, draws, rnd)
}

type avx2Backend struct{}

func (avx2Backend) id() Backend { return BackendAVX2 }

func (avx2Backend) secureSetBits(r []uint64, firstPos uint32, wlist []uint32) {
	setBitsAVX2(r, firstPos, wlist)
}

func (avx2Backend) sampleErrorIndices(out []uint32, z uint32, draws int, rnd io.Reader) error {
	return sampleErrorIndicesAVX2(out, z, draws, rnd)
}

type avx512Backend struct{}

func (avx512Backend) id() Backend { return BackendAVX512 }

func (avx512Backend) secureSetBits(r []uint64, firstPos uint32, wlist []uint32) {
	setBitsAVX512(r, firstPos, wlist)
}

func (avx512Backend) sampleErrorIndices(out []uint32, z uint32, draws int, rnd io.Reader) error {
	return sampleErrorIndicesAVX512(out, z, draws, rnd)
}

var (
	detectOnce sync.Once
	detected   backend
)

// detectBackend queries the CPU once, preferring AVX512 over AVX2 over the
// portable code.
func detectBackend() backend {
	detectOnce.Do(func() {
		switch {
		case cpu.HasAVX512():
			detected = avx512Backend{}
		case cpu.HasAVX2():
			detected = avx2Backend{}
		default:
			detected = portableBackend{}
		}
	})
	return detected
}

func newBackend(b Backend) backend {
	switch b {
	case BackendAuto:
		return detectBackend()
	case BackendPortable:
		return portableBackend{}
	case BackendAVX2:
		return avx2Backend{}
	case BackendAVX512:
		return avx512Backend{}
	default:
		return nil
	}
}
