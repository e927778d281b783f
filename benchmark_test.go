// benchmark_test.go - BIKE sampling benchmarks.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package bike

import (
	"crypto/rand"
	"testing"
)

func benchGenerateSecretKey(s *Sampler) func(*testing.B) {
	return func(b *testing.B) {
		seed, err := GenerateSeed(rand.Reader)
		if err != nil {
			b.Fatalf("GenerateSeed failed: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := s.GenerateSecretKey(seed); err != nil {
				b.Fatalf("GenerateSecretKey failed: %v", err)
			}
		}
	}
}

func benchGenerateErrorVector(s *Sampler) func(*testing.B) {
	return func(b *testing.B) {
		seed, err := GenerateSeed(rand.Reader)
		if err != nil {
			b.Fatalf("GenerateSeed failed: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := s.GenerateErrorVector(seed); err != nil {
				b.Fatalf("GenerateErrorVector failed: %v", err)
			}
		}
	}
}

func benchSetBits(be Backend, p *Params) func(*testing.B) {
	return func(b *testing.B) {
		setBits := setBitsFor(be)
		r := make([]uint64, p.paddedQwords())
		wlist := make([]uint32, p.T)
		for i := range wlist {
			wlist[i] = uint32(i) * (p.NBits() / p.T)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			setBits(r, 0, wlist)
		}
	}
}

func BenchmarkLevel1(b *testing.B) {
	for _, strat := range allStrategies {
		s, err := NewSampler(&Level1, WithStrategy(strat))
		if err != nil {
			b.Fatalf("NewSampler failed: %v", err)
		}
		b.Run("GenerateSecretKey/"+strat.String(), benchGenerateSecretKey(s))
		b.Run("GenerateErrorVector/"+strat.String(), benchGenerateErrorVector(s))
	}
}

func BenchmarkSetBits(b *testing.B) {
	for _, be := range allBackends {
		b.Run(be.String(), benchSetBits(be, &Level1))
	}
}
