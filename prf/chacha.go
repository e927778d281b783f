// chacha.go - ChaCha20 block generator.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package prf

import "gitlab.com/yawning/chacha20.git"

// chachaBlockSize is the size of one ChaCha20 keystream block in bytes.
const chachaBlockSize = 64

type chacha struct {
	c *chacha20.Cipher
}

func newChaCha(seed *Seed) (*chacha, error) {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.New(seed[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &chacha{c: c}, nil
}

func (g *chacha) blockSize() int {
	return chachaBlockSize
}

func (g *chacha) nextBlock(out []byte) {
	g.c.KeyStream(out[:chachaBlockSize])
}

func (g *chacha) reset() {
	g.c.Reset()
	g.c = nil
}
