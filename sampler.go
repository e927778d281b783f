// sampler.go - Secret key and error vector generation.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"io"
	"math/bits"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"gitlab.com/yawning/bike.git/prf"
)

// Strategy selects the index sampling algorithms.
type Strategy int

const (
	// StrategyRejection samples the secret key with bounded rejection
	// sampling, and the error vector with the fixed-iteration sampler of
	// the selected backend.
	StrategyRejection Strategy = iota

	// StrategyFisherYates samples both the secret key and the error vector
	// with the constant time Fisher-Yates variant.
	StrategyFisherYates
)

func (s Strategy) String() string {
	switch s {
	case StrategyRejection:
		return "rejection"
	case StrategyFisherYates:
		return "fisher-yates"
	default:
		return "unknown"
	}
}

type options struct {
	strategy  Strategy
	backend   Backend
	primitive prf.Primitive
	logger    log.Logger
}

// Option configures a Sampler.
type Option func(*options)

// WithStrategy sets the index sampling strategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithBackend forces a backend instead of the one detected from the CPU.
// Every backend is implemented in Go and runs anywhere, so this is mostly
// useful for testing.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithPRF sets the PRF primitive, overriding the build time default.
func WithPRF(p prf.Primitive) Option {
	return func(o *options) { o.primitive = p }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Sampler derives secret keys and error vectors for one parameter set.  The
// algorithms are fixed when the Sampler is created, after which it is
// immutable and safe for concurrent use.
type Sampler struct {
	params    Params
	strategy  Strategy
	primitive prf.Primitive
	be        backend
	logger    log.Logger

	keyIndices   indexSampler
	errorIndices indexSampler

	// budget is the invocation budget of every PRF state this Sampler
	// derives.
	budget uint64
}

// NewSampler returns a Sampler for the parameter set p.
func NewSampler(p *Params, opts ...Option) (*Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := options{
		strategy:  StrategyRejection,
		backend:   BackendAuto,
		primitive: prf.Default,
		logger:    log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	be := newBackend(o.backend)
	if be == nil {
		return nil, errors.Errorf("bike: unknown backend %d", int(o.backend))
	}

	s := &Sampler{
		params:    *p,
		strategy:  o.strategy,
		primitive: o.primitive,
		be:        be,
		logger:    o.logger,
		budget:    prf.MaxInvocations,
	}

	switch o.strategy {
	case StrategyRejection:
		draws := int(p.MaxRandIndicesT)
		s.keyIndices = indicesModZ
		s.errorIndices = func(out []uint32, z uint32, rnd io.Reader) error {
			return be.sampleErrorIndices(out, z, draws, rnd)
		}
	case StrategyFisherYates:
		s.keyIndices = fisherYates
		s.errorIndices = fisherYates
	default:
		return nil, errors.Errorf("bike: unknown strategy %d", int(o.strategy))
	}

	level.Debug(s.logger).Log(
		"msg", "sampler initialized",
		"params", p.Name,
		"backend", be.id(),
		"strategy", o.strategy,
		"prf", o.primitive,
	)

	return s, nil
}

// Params returns the parameter set of the Sampler.
func (s *Sampler) Params() Params {
	return s.params
}

// Backend returns the backend in use.
func (s *Sampler) Backend() Backend {
	return s.be.id()
}

// Strategy returns the index sampling strategy in use.
func (s *Sampler) Strategy() Strategy {
	return s.strategy
}

// NewPRF returns a PRF state derived from seed with the full invocation
// budget.  The caller owns the state and must Erase it.
func (s *Sampler) NewPRF(seed *Seed) (*prf.State, error) {
	return prf.New(s.primitive, seed, s.budget)
}

func (s *Sampler) sampleKeyHalf(r *BitVector, wlist IndexList, rnd io.Reader) error {
	var tmpBuf [maxWeight]uint32
	defer wipeIndices(tmpBuf[:])

	tmp := tmpBuf[:len(wlist)]
	if err := s.keyIndices(tmp, s.params.RBits, rnd); err != nil {
		return err
	}

	copy(wlist, tmp)
	s.be.secureSetBits(r.qw, 0, wlist)
	return nil
}

// GenerateSecretKey derives the secret key from seed.  A single PRF state
// serves both halves: h0 is sampled first, and h1 continues the same stream.
func (s *Sampler) GenerateSecretKey(seed *Seed) (*SecretKey, error) {
	st, err := s.NewPRF(seed)
	if err != nil {
		return nil, errors.Wrap(err, "initializing prf")
	}
	defer st.Erase()

	sk := &SecretKey{
		H0:        newBitVector(&s.params),
		H1:        newBitVector(&s.params),
		H0Indices: make(IndexList, s.params.D),
		H1Indices: make(IndexList, s.params.D),
	}

	if err = s.sampleKeyHalf(sk.H0, sk.H0Indices, st); err != nil {
		err = errors.Wrap(err, "sampling h0")
	} else if err = s.sampleKeyHalf(sk.H1, sk.H1Indices, st); err != nil {
		err = errors.Wrap(err, "sampling h1")
	}
	if err != nil {
		sk.Reset()
		level.Warn(s.logger).Log("msg", "secret key generation failed", "err", err)
		return nil, err
	}

	return sk, nil
}

// GenerateErrorVector derives an error vector of weight T from seed.  The T
// positions are drawn from [0, 2R); those below R land in e0 and the rest,
// shifted down by R, in e1.
func (s *Sampler) GenerateErrorVector(seed *Seed) (*ErrorVector, error) {
	st, err := s.NewPRF(seed)
	if err != nil {
		return nil, errors.Wrap(err, "initializing prf")
	}
	defer st.Erase()

	var wlistBuf [maxWeight]uint32
	defer wipeIndices(wlistBuf[:])

	wlist := wlistBuf[:s.params.T]
	if err = s.errorIndices(wlist, s.params.NBits(), st); err != nil {
		err = errors.Wrap(err, "sampling error indices")
		level.Warn(s.logger).Log("msg", "error vector generation failed", "err", err)
		return nil, err
	}

	e := &ErrorVector{
		E0: newBitVector(&s.params),
		E1: newBitVector(&s.params),
	}
	s.be.secureSetBits(e.E0.qw, 0, wlist)
	s.be.secureSetBits(e.E1.qw, s.params.RBits, wlist)

	// Positions in [R, 2R) also match words of e0 past bit R.
	e.E0.clearPadding()
	e.E1.clearPadding()

	return e, nil
}

// SampleUniformBits draws R uniformly random bits from st.  If mustBeOdd is
// set, the lowest bit is flipped when the weight of the draw is even, so the
// result always has odd weight.
func (s *Sampler) SampleUniformBits(st *prf.State, mustBeOdd bool) (*BitVector, error) {
	buf := make([]byte, s.params.RBytes())
	defer memwipe(buf)

	if _, err := io.ReadFull(st, buf); err != nil {
		return nil, errors.Wrap(err, "sampling uniform bits")
	}
	buf[len(buf)-1] &= s.params.lastRByteMask()

	r := newBitVector(&s.params)
	r.setBytes(buf)

	if mustBeOdd {
		makeOddWeight(r)
	}
	return r, nil
}

func makeOddWeight(r *BitVector) {
	w := uint64(0)
	for _, q := range r.qw {
		w += uint64(bits.OnesCount64(q))
	}
	r.qw[0] ^= (w & 1) ^ 1
}
