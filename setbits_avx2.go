// setbits_avx2.go - AVX2 shaped bit packer and error sampler.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import "io"

// The AVX2 variants process data in 256 bit lanes: 4 quadwords (or 8
// doublewords) per register, with 4 registers in flight for the packer.
const (
	ymmQwords  = 4
	ymmDwords  = 8
	numYmms    = 4
	ymmsQwords = ymmQwords * numYmms

	maxWlistAVX2 = ymmDwords * ((maxWeight + ymmDwords - 1) / ymmDwords)
)

type ymm [ymmQwords]uint64

// setBitsAVX2 is setBitsPortable computed 16 destination quadwords at a
// time.  len(r) must be a multiple of 16.
func setBitsAVX2(r []uint64, firstPos uint32, wlist []uint32) {
	if len(r)%ymmsQwords != 0 {
		panic("bike: destination is not a multiple of the AVX2 step")
	}
	checkWlist(wlist)

	var va, vaPosQw [numYmms]ymm

	// vaPosQw holds the quadword positions 0 .. ymmsQwords-1.
	for v := range vaPosQw {
		for l := range vaPosQw[v] {
			vaPosQw[v][l] = uint64(v*ymmQwords + l)
		}
	}

	for i := 0; i < len(r); i += ymmsQwords {
		va = [numYmms]ymm{}

		for _, idx := range wlist {
			wPosQw, wPosBit := wordPos(idx, firstPos)
			for v := range va {
				for l := range va[v] {
					va[v][l] |= eqMask64(vaPosQw[v][l], wPosQw) & wPosBit
				}
			}
		}

		for v := range va {
			copy(r[i+v*ymmQwords:], va[v][:])
			for l := range vaPosQw[v] {
				vaPosQw[v][l] += ymmsQwords
			}
		}
	}

	va = [numYmms]ymm{}
}

// sampleErrorIndicesAVX2 is sampleErrorIndicesPortable over an index list
// padded to a whole number of 8 doubleword registers.
func sampleErrorIndicesAVX2(out []uint32, z uint32, draws int, rnd io.Reader) error {
	var wlistBuf [maxWlistAVX2]uint32
	var buf [4]byte
	defer func() {
		wipeIndices(wlistBuf[:])
		memwipe(buf[:])
	}()

	n := ymmDwords * ((len(out) + ymmDwords - 1) / ymmDwords)
	wlist := wlistBuf[:n]
	for i := range wlist {
		wlist[i] = idxInvalid
	}

	mask := rangeMask(z)
	ctr := uint32(0)
	for i := 0; i < draws; i++ {
		idx, err := readUint32(rnd, &buf)
		if err != nil {
			return err
		}
		idx &= mask

		var vdup [ymmDwords]uint32
		for j := 0; j < n; j += ymmDwords {
			for l := 0; l < ymmDwords; l++ {
				vdup[l] |= eqMask32(idx, wlist[j+l])
				writeMask := eqMask32(ctr, uint32(j+l))
				wlist[j+l] = (writeMask & idx) | (^writeMask & wlist[j+l])
			}
		}
		isDup := uint32(0)
		for _, d := range vdup {
			isDup |= d & 1
		}

		ctr += (isDup ^ 1) & lt32(idx, z)
	}

	copy(out, wlist)
	dropUnaccepted(out, ctr)
	return nil
}
