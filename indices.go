// indices.go - Uniform sampling of distinct indices.
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

// indexSampler fills out with len(out) distinct values in [0, z), drawn from
// rnd.
type indexSampler func(out []uint32, z uint32, rnd io.Reader) error

func readUint32(rnd io.Reader, buf *[4]byte) (uint32, error) {
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// randModLen draws values masked to the bit length of z until one falls
// in [0, z).
func randModLen(z uint32, rnd io.Reader, buf *[4]byte) (uint32, error) {
	mask := rangeMask(z)
	for {
		v, err := readUint32(rnd, buf)
		if err != nil {
			return 0, err
		}
		v &= mask
		if v < z {
			return v, nil
		}
	}
}

// isNew returns 1 if wlist[ctr] does not appear in wlist[:ctr], 0 otherwise.
// Every earlier entry is compared, whatever the outcome.
func isNew(wlist []uint32, ctr int) int {
	v := wlist[ctr]
	dup := uint32(0)
	for i := 0; i < ctr; i++ {
		dup |= eqMask32(wlist[i], v)
	}
	return int(1 ^ (dup & 1))
}

// indicesModZ is bounded rejection sampling.  The number of draws depends on
// the random stream, but never on which earlier entry a duplicate matched.
func indicesModZ(out []uint32, z uint32, rnd io.Reader) error {
	var buf [4]byte
	defer memwipe(buf[:])

	for ctr := 0; ctr < len(out); {
		v, err := randModLen(z, rnd, &buf)
		if err != nil {
			return err
		}
		out[ctr] = v
		ctr += isNew(out, ctr)
	}
	return nil
}

// fisherYates draws len(out) distinct values in [0, z) with exactly len(out)
// draws.  Position i takes a value uniform in [i, z), or i itself when that
// value was already taken by a later position; every later position is
// checked and the fallback is applied with a mask.  len(out) must not exceed
// z.
func fisherYates(out []uint32, z uint32, rnd io.Reader) error {
	if uint64(len(out)) > uint64(z) {
		panic("bike: more indices requested than the range holds")
	}

	var buf [4]byte
	defer memwipe(buf[:])

	for i := len(out) - 1; i >= 0; i-- {
		r, err := readUint32(rnd, &buf)
		if err != nil {
			return err
		}
		l := uint32(i) + uint32((uint64(r)*uint64(z-uint32(i)))>>32)

		out[i] = l
		for j := i + 1; j < len(out); j++ {
			m := eqMask32(l, out[j])
			out[i] = (m & uint32(i)) | (^m & out[i])
		}
	}
	return nil
}

// sampleErrorIndicesPortable performs exactly draws draws.  Every candidate
// is written to the slot matching the running count of accepted values, and
// only the count depends on whether it was accepted.  Slots that are never
// filled hold idxInvalid on return, which the packers ignore.
func sampleErrorIndicesPortable(out []uint32, z uint32, draws int, rnd io.Reader) error {
	var buf [4]byte
	defer memwipe(buf[:])

	for i := range out {
		out[i] = idxInvalid
	}

	mask := rangeMask(z)
	ctr := uint32(0)
	for i := 0; i < draws; i++ {
		idx, err := readUint32(rnd, &buf)
		if err != nil {
			return err
		}
		idx &= mask

		isDup := uint32(0)
		for j := range out {
			isDup |= eqMask32(idx, out[j]) & 1
			m := eqMask32(uint32(j), ctr)
			out[j] = (^m & out[j]) | (m & idx)
		}

		ctr += (isDup ^ 1) & lt32(idx, z)
	}

	dropUnaccepted(out, ctr)
	return nil
}

// dropUnaccepted resets every slot at or beyond ctr to idxInvalid, clearing
// the last rejected candidate when fewer than len(out) values were accepted.
func dropUnaccepted(out []uint32, ctr uint32) {
	for j := range out {
		m := -lt32(uint32(j), ctr)
		out[j] = (m & out[j]) | (^m & idxInvalid)
	}
}
