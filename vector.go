// vector.go - Dense bit vectors.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"encoding/binary"
	"math/bits"
)

// IndexList is a list of bit positions.
type IndexList []uint32

// Reset zeroes the list.
func (l IndexList) Reset() {
	wipeIndices(l)
}

// BitVector is a dense vector of R bits, zero padded up to a whole number of
// SIMD steps.  Bits at or beyond R are always zero.
type BitVector struct {
	nBits int
	qw    []uint64
}

func newBitVector(p *Params) *BitVector {
	return &BitVector{
		nBits: int(p.RBits),
		qw:    make([]uint64, p.paddedQwords()),
	}
}

// Len returns the declared length of the vector in bits.
func (v *BitVector) Len() int {
	return v.nBits
}

// Bit returns bit i of the vector.
func (v *BitVector) Bit(i int) uint {
	return uint(v.qw[i>>6]>>(uint(i)&63)) & 1
}

// Weight returns the Hamming weight of the vector.
func (v *BitVector) Weight() int {
	w := 0
	for _, q := range v.qw {
		w += bits.OnesCount64(q)
	}
	return w
}

// Bytes returns the ceil(R/8) byte little endian encoding of the vector.
func (v *BitVector) Bytes() []byte {
	var tmp [8]byte
	out := make([]byte, (v.nBits+7)/8)
	for i := 0; i < len(out); i += 8 {
		binary.LittleEndian.PutUint64(tmp[:], v.qw[i/8])
		copy(out[i:], tmp[:])
	}
	memwipe(tmp[:])
	return out
}

func (v *BitVector) setBytes(b []byte) {
	var tmp [8]byte
	for i := 0; i < len(b); i += 8 {
		n := copy(tmp[:], b[i:])
		for j := n; j < len(tmp); j++ {
			tmp[j] = 0
		}
		v.qw[i/8] = binary.LittleEndian.Uint64(tmp[:])
	}
	memwipe(tmp[:])
}

// clearPadding zeroes every bit at or beyond the declared length.
func (v *BitVector) clearPadding() {
	w := v.nBits >> 6
	if r := uint(v.nBits) & 63; r != 0 {
		v.qw[w] &= (uint64(1) << r) - 1
		w++
	}
	for i := w; i < len(v.qw); i++ {
		v.qw[i] = 0
	}
}

// Equal returns true iff v and u hold the same bits.  It is not constant
// time.
func (v *BitVector) Equal(u *BitVector) bool {
	if v.nBits != u.nBits || len(v.qw) != len(u.qw) {
		return false
	}
	for i := range v.qw {
		if v.qw[i] != u.qw[i] {
			return false
		}
	}
	return true
}

// Reset zeroes the vector.
func (v *BitVector) Reset() {
	for i := range v.qw {
		v.qw[i] = 0
	}
}
