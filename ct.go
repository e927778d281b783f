// ct.go - Constant time helpers.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"crypto/subtle"
	"math/bits"
)

// idxInvalid marks an unused slot of an index list.
const idxInvalid = 0xffffffff

// eqMask64 returns all ones if a == b, 0 otherwise.
func eqMask64(a, b uint64) uint64 {
	d := a ^ b
	return ((d | -d) >> 63) - 1
}

// eqMask32 returns all ones if a == b, 0 otherwise.
func eqMask32(a, b uint32) uint32 {
	return -uint32(subtle.ConstantTimeEq(int32(a), int32(b)))
}

// lt32 returns 1 if a < b, 0 otherwise.
func lt32(a, b uint32) uint32 {
	return uint32((uint64(a) - uint64(b)) >> 63)
}

// rangeMask returns the smallest all ones mask covering [0, z).
func rangeMask(z uint32) uint32 {
	return uint32(1)<<uint(bits.Len32(z-1)) - 1
}

func memwipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipeIndices(l []uint32) {
	for i := range l {
		l[i] = 0
	}
}
