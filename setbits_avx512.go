// setbits_avx512.go - AVX512 shaped bit packer and error sampler.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import "io"

// The AVX512 variants process data in 512 bit lanes: 8 quadwords (or 16
// doublewords) per register, with 8 registers in flight for the packer.
const (
	zmmDwords = 16

	maxWlistAVX512 = zmmDwords * ((maxWeight + zmmDwords - 1) / zmmDwords)
)

type zmm [zmmQwords]uint64

// setBitsAVX512 is setBitsPortable computed 64 destination quadwords at a
// time, merging bits through a per lane compare mask.  len(r) must be a
// multiple of 64.
func setBitsAVX512(r []uint64, firstPos uint32, wlist []uint32) {
	if len(r)%zmmsQwords != 0 {
		panic("bike: destination is not a multiple of the AVX512 step")
	}
	checkWlist(wlist)

	var va, vaPosQw [numZmms]zmm
	for v := range vaPosQw {
		for l := range vaPosQw[v] {
			vaPosQw[v][l] = uint64(v*zmmQwords + l)
		}
	}

	for i := 0; i < len(r); i += zmmsQwords {
		va = [numZmms]zmm{}

		for _, idx := range wlist {
			wPosQw, wPosBit := wordPos(idx, firstPos)
			for v := range va {
				for l := range va[v] {
					m := eqMask64(vaPosQw[v][l], wPosQw)
					va[v][l] = (m & (va[v][l] | wPosBit)) | (^m & va[v][l])
				}
			}
		}

		for v := range va {
			copy(r[i+v*zmmQwords:], va[v][:])
			for l := range vaPosQw[v] {
				vaPosQw[v][l] += zmmsQwords
			}
		}
	}

	va = [numZmms]zmm{}
}

// sampleErrorIndicesAVX512 is sampleErrorIndicesPortable over an index list
// padded to a whole number of 16 doubleword registers, with the duplicate
// and write masks kept as 16 bit lane masks.
func sampleErrorIndicesAVX512(out []uint32, z uint32, draws int, rnd io.Reader) error {
	var wlistBuf [maxWlistAVX512]uint32
	var buf [4]byte
	defer func() {
		wipeIndices(wlistBuf[:])
		memwipe(buf[:])
	}()

	n := zmmDwords * ((len(out) + zmmDwords - 1) / zmmDwords)
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

		isDup := uint16(0)
		for j := 0; j < n; j += zmmDwords {
			var writeMask uint16
			for l := 0; l < zmmDwords; l++ {
				isDup |= uint16(eqMask32(idx, wlist[j+l])&1) << uint(l)
				writeMask |= uint16(eqMask32(ctr, uint32(j+l))&1) << uint(l)
			}
			for l := 0; l < zmmDwords; l++ {
				m := -uint32((writeMask >> uint(l)) & 1)
				wlist[j+l] = (m & idx) | (^m & wlist[j+l])
			}
		}

		notDup := eqMask32(uint32(isDup), 0) & 1
		ctr += notDup & lt32(idx, z)
	}

	copy(out, wlist)
	dropUnaccepted(out, ctr)
	return nil
}
