// setbits.go - Portable constant time bit packer.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

// wordPos splits idx - firstPos into a quadword position and a single bit
// mask.  Positions below firstPos (and the invalid marker) yield a negative
// quadword position that never matches a destination word.
func wordPos(idx, firstPos uint32) (qw, bit uint64) {
	w := int32(idx - firstPos)
	return uint64(int64(w >> 6)), uint64(1) << (uint32(w) & 63)
}

func checkWlist(wlist []uint32) {
	if len(wlist) > maxWeight {
		panic("bike: index list exceeds the maximum weight")
	}
}

// setBitsPortable writes into r the bits at wlist[i] - firstPos, touching
// every word of r once per index regardless of which bits end up set.
func setBitsPortable(r []uint64, firstPos uint32, wlist []uint32) {
	checkWlist(wlist)

	var posQw, posBit [maxWeight]uint64
	for i, idx := range wlist {
		posQw[i], posBit[i] = wordPos(idx, firstPos)
	}

	for i := range r {
		val := uint64(0)
		for j := range wlist {
			val |= posBit[j] & eqMask64(posQw[j], uint64(i))
		}
		r[i] = val
	}

	for i := range posQw {
		posQw[i], posBit[i] = 0, 0
	}
}
