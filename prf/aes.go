// aes.go - AES-256-CTR block generator.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package prf

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// ctrBits is the width of the part of the AES counter block that is
// incremented per invocation.
const ctrBits = 64

// The counter must not wrap before the invocation budget runs out.
const _ uint64 = 1<<ctrBits - MaxInvocations

type aesCTR struct {
	b   cipher.Block
	ctr [aes.BlockSize]byte
}

func newAESCTR(seed *Seed) (*aesCTR, error) {
	b, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	return &aesCTR{b: b}, nil
}

func (g *aesCTR) blockSize() int {
	return aes.BlockSize
}

// nextBlock encrypts the counter, then increments its low 64 bit word.
func (g *aesCTR) nextBlock(out []byte) {
	g.b.Encrypt(out, g.ctr[:])
	ctr := binary.LittleEndian.Uint64(g.ctr[0:8])
	binary.LittleEndian.PutUint64(g.ctr[0:8], ctr+1)
}

// reset drops the key schedule.  crypto/aes keeps the expanded key inside
// the cipher.Block, which offers no way to scrub it, so the best that can be
// done is to release the only reference.
func (g *aesCTR) reset() {
	g.b = nil
	memwipe(g.ctr[:])
}
