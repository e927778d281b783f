// indices_test.go - Index sampler tests.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yawning/bike.git/prf"
)

func errorSamplerFor(b Backend) func([]uint32, uint32, int, io.Reader) error {
	return newBackend(b).sampleErrorIndices
}

func TestRangeMask(t *testing.T) {
	require.Equal(t, uint32(0), rangeMask(1))
	require.Equal(t, uint32(1), rangeMask(2))
	require.Equal(t, uint32(15), rangeMask(16))
	require.Equal(t, uint32(31), rangeMask(17))
	require.Equal(t, uint32(0x3fff), rangeMask(Level1.RBits))
	require.Equal(t, uint32(0x7fff), rangeMask(Level1.NBits()))
}

func TestFisherYatesScenario(t *testing.T) {
	out := make([]uint32, 3)
	require.NoError(t, fisherYates(out, 17, newUint32Stream(5, 2, 9)))
	require.Equal(t, []uint32{0, 1, 2}, out)

	again := make([]uint32, 3)
	require.NoError(t, fisherYates(again, 17, newUint32Stream(5, 2, 9)))
	require.Equal(t, out, again)

	r := newBitVector(&toyParams)
	setBitsPortable(r.qw, 0, out)
	require.Equal(t, 3, r.Weight())
	for i := 0; i < 3; i++ {
		require.Equal(t, uint(1), r.Bit(i))
	}
}

func TestFisherYatesRangeDraw(t *testing.T) {
	// i=2: 2 + (2^31 * 15) >> 32 = 9
	// i=1: 1 + ((2^32-1) * 16) >> 32 = 16
	// i=0: 0 + (2^30 * 17) >> 32 = 4
	out := make([]uint32, 3)
	require.NoError(t, fisherYates(out, 17, newUint32Stream(0x80000000, 0xffffffff, 0x40000000)))
	require.Equal(t, []uint32{4, 16, 9}, out)
}

func TestFisherYatesCollision(t *testing.T) {
	// i=1 draws 1 + (2^31 * 16) >> 32 = 9, which position 2 already holds,
	// so it falls back to 1.
	out := make([]uint32, 3)
	require.NoError(t, fisherYates(out, 17, newUint32Stream(0x80000000, 0x80000000, 0)))
	require.Equal(t, []uint32{0, 1, 9}, out)
}

func TestFisherYatesDrawCount(t *testing.T) {
	st, err := prf.New(prf.AES256CTR, testSeed(1), prf.MaxInvocations)
	require.NoError(t, err)
	defer st.Erase()

	c := &countingReader{r: st}
	out := make([]uint32, Level1.D)
	require.NoError(t, fisherYates(out, Level1.RBits, c))
	require.Equal(t, 4*int(Level1.D), c.bytes)
}

func TestIndicesModZScenario(t *testing.T) {
	// z=17 masks to 5 bits: 20 is rejected, 35&31=3 is a duplicate.
	s := newUint32Stream(20, 3, 35, 16, 0)
	c := &countingReader{r: s}
	out := make([]uint32, 3)
	require.NoError(t, indicesModZ(out, 17, c))
	require.Equal(t, []uint32{3, 16, 0}, out)
	require.Equal(t, 5*4, c.bytes)
}

func TestIsNew(t *testing.T) {
	l := []uint32{4, 9, 1, 9}
	require.Equal(t, 1, isNew(l, 0))
	require.Equal(t, 1, isNew(l, 2))
	require.Equal(t, 0, isNew(l, 3))
}

func TestSamplersRangeAndDistinct(t *testing.T) {
	samplers := map[string]indexSampler{
		"rejection":    indicesModZ,
		"fisher-yates": fisherYates,
	}
	for name, fn := range samplers {
		for _, p := range append(allParams, toyParams) {
			for i := byte(0); i < 8; i++ {
				st, err := prf.New(prf.SHAKE256, testSeed(i), prf.MaxInvocations)
				require.NoError(t, err)

				out := make([]uint32, p.T)
				require.NoError(t, fn(out, p.NBits(), st))
				st.Erase()

				require.True(t, isDistinct(out), "%s %s", name, p.Name)
				for _, v := range out {
					require.Less(t, v, p.NBits(), "%s %s", name, p.Name)
				}
			}
		}
	}
}

func TestSampleErrorIndicesScenario(t *testing.T) {
	// z=34 masks to 6 bits.  40 and 63 are out of range, the second 7 is a
	// duplicate.
	for _, b := range allBackends {
		c := &countingReader{r: newUint32Stream(40, 7, 7, 33, 63, 12)}
		out := make([]uint32, 3)
		require.NoError(t, errorSamplerFor(b)(out, 34, 6, c))
		require.Equal(t, []uint32{7, 33, 12}, out, b.String())
		require.Equal(t, 6*4, c.bytes, b.String())
	}
}

func TestSampleErrorIndicesShortfall(t *testing.T) {
	// Too few draws: unfilled slots are left invalid, including the slot the
	// rejected duplicate was written to.
	for _, b := range allBackends {
		out := make([]uint32, 3)
		require.NoError(t, errorSamplerFor(b)(out, 34, 2, newUint32Stream(7, 7)))
		require.Equal(t, []uint32{7, idxInvalid, idxInvalid}, out, b.String())

		r := make([]uint64, zmmsQwords)
		setBitsFor(b)(r, 0, out)
		require.Equal(t, uint64(1)<<7, r[0])
	}
}

func TestSampleErrorIndicesFixedDraws(t *testing.T) {
	for _, p := range append(allParams, toyParams) {
		for i := byte(0); i < 4; i++ {
			var want []uint32
			for _, b := range allBackends {
				st, err := prf.New(prf.AES256CTR, testSeed(i), prf.MaxInvocations)
				require.NoError(t, err)

				c := &countingReader{r: st}
				out := make([]uint32, p.T)
				require.NoError(t, errorSamplerFor(b)(out, p.NBits(), int(p.MaxRandIndicesT), c))
				st.Erase()

				require.Equal(t, 4*int(p.MaxRandIndicesT), c.bytes, "%s %v", p.Name, b)
				require.True(t, isDistinct(out), "%s %v", p.Name, b)
				for _, v := range out {
					require.Less(t, v, p.NBits(), "%s %v", p.Name, b)
				}

				if want == nil {
					want = out
				} else {
					require.Equal(t, want, out, "%s %v", p.Name, b)
				}
			}
		}
	}
}

func TestSamplersPropagateExhaustion(t *testing.T) {
	mk := func() *prf.State {
		st, err := prf.New(prf.AES256CTR, testSeed(9), 1)
		require.NoError(t, err)
		return st
	}

	st := mk()
	err := indicesModZ(make([]uint32, Level1.D), Level1.RBits, st)
	require.True(t, errors.Is(err, prf.ErrExhausted), "%v", err)
	st.Erase()

	st = mk()
	err = fisherYates(make([]uint32, Level1.D), Level1.RBits, st)
	require.True(t, errors.Is(err, prf.ErrExhausted), "%v", err)
	st.Erase()

	for _, b := range allBackends {
		st = mk()
		err = errorSamplerFor(b)(make([]uint32, Level1.T), Level1.NBits(), int(Level1.MaxRandIndicesT), st)
		require.True(t, errors.Is(err, prf.ErrExhausted), "%v: %v", b, err)
		st.Erase()
	}
}
