// helpers_test.go - Shared test fixtures.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"encoding/binary"
	"io"
)

var toyParams = Params{
	Name:            "toy",
	RBits:           17,
	D:               3,
	T:               4,
	MaxRandIndicesT: 64,
}

var allParams = []Params{Level1, Level3, Level5}

var allBackends = []Backend{BackendPortable, BackendAVX2, BackendAVX512}

// uint32Stream replays a fixed sequence of little endian 32 bit values.
type uint32Stream struct {
	b []byte
}

func newUint32Stream(vals ...uint32) *uint32Stream {
	s := &uint32Stream{b: make([]byte, 4*len(vals))}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(s.b[4*i:], v)
	}
	return s
}

func (s *uint32Stream) Read(p []byte) (int, error) {
	if len(s.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.b)
	s.b = s.b[n:]
	return n, nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r     io.Reader
	bytes int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.bytes += n
	return n, err
}

func testSeed(b byte) *Seed {
	var s Seed
	for i := range s {
		s[i] = b ^ byte(i*7)
	}
	return &s
}

func setBitsFor(b Backend) func([]uint64, uint32, []uint32) {
	return newBackend(b).secureSetBits
}

func isDistinct(l []uint32) bool {
	seen := make(map[uint32]bool, len(l))
	for _, v := range l {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
