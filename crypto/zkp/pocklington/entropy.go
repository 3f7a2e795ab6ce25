// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package zkppocklington

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/primecert/hash2prime/crypto/pocklington"
)

// entropySource is the in-circuit twin of pocklington.EntropyStream: the
// digest's low hash.BitCapacity bits are consumed in order, and the seed
// is advanced by the expansion hash when they run out. Because
// consumption is a pure function of the plan, the number of chain steps
// is static.
type entropySource struct {
	api     frontend.API
	current frontend.Variable
	bits    []frontend.Variable
	used    int
}

func newEntropySource(api frontend.API, digest frontend.Variable) *entropySource {
	return &entropySource{
		api:     api,
		current: digest,
		bits:    lowCapacityBits(api, digest),
	}
}

// canonicalBits decomposes a field element into fr.Bits bit wires and
// pins the canonical representation. A full-width composition constraint
// alone admits two bit strings for roughly a third of the field (v and
// v plus the modulus), and those strings disagree in their low bits, so
// canonicity must be enforced wherever the bits themselves carry
// meaning.
func canonicalBits(api frontend.API, v frontend.Variable) []frontend.Variable {
	bits := api.ToBinary(v, fr.Bits)
	assertLessOrEqualConst(api, bits, new(big.Int).Sub(fr.Modulus(), big.NewInt(1)))
	return bits
}

// assertLessOrEqualConst enforces that the little-endian boolean wires
// denote a value at most the given constant, by a most-significant-first
// walk tracking whether the prefix still equals the bound's.
func assertLessOrEqualConst(api frontend.API, bits []frontend.Variable, bound *big.Int) {
	eq := frontend.Variable(1)
	for i := len(bits) - 1; i >= 0; i-- {
		if bound.Bit(i) == 1 {
			eq = api.And(eq, bits[i])
		} else {
			// With the prefix still equal, a set bit here would
			// exceed the bound.
			api.AssertIsEqual(api.Mul(eq, bits[i]), 0)
		}
	}
}

// lowCapacityBits keeps the BitCapacity low bits of a field element.
func lowCapacityBits(api frontend.API, v frontend.Variable) []frontend.Variable {
	return canonicalBits(api, v)[:fr.Bits-1]
}

func (s *entropySource) nextBit() (frontend.Variable, error) {
	if s.used == len(s.bits) {
		next, err := expandSeed(s.api, s.current)
		if err != nil {
			return nil, err
		}
		s.current = next
		s.bits = lowCapacityBits(s.api, next)
		s.used = 0
	}
	b := s.bits[s.used]
	s.used++
	return b, nil
}

// getBits draws template.RandomBits stream bits and returns the templated
// number's bits, least significant first, with the fixed ones as
// constants.
func (s *entropySource) getBits(t pocklington.NatTemplate) ([]frontend.Variable, error) {
	out := make([]frontend.Variable, 0, t.Bits())
	for i := 0; i < t.TrailingOnes; i++ {
		out = append(out, 1)
	}
	for i := 0; i < t.RandomBits; i++ {
		b, err := s.nextBit()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	for i := 0; i < t.LeadingOnes; i++ {
		out = append(out, 1)
	}
	return out, nil
}
