// shake.go - SHAKE256 block generator.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package prf

import "golang.org/x/crypto/sha3"

type shake struct {
	h sha3.ShakeHash
}

func newSHAKE(seed *Seed) *shake {
	h := sha3.NewShake256()
	h.Write(seed[:])
	return &shake{h: h}
}

func (g *shake) blockSize() int {
	return shake256Rate
}

// nextBlock squeezes one rate sized block.  Every read is a whole block, so
// each call corresponds to exactly one permutation.
func (g *shake) nextBlock(out []byte) {
	g.h.Read(out[:shake256Rate])
}

func (g *shake) reset() {
	g.h.Reset()
	g.h = nil
}
