// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package pocklington

import (
	"math/big"

	"github.com/primecert/hash2prime/common/hash"
)

// NatTemplate describes the shape of a number drawn from the entropy
// stream: RandomBits pseudorandom bits sandwiched between fixed set bits.
// Trailing ones force oddness and residues, leading ones a minimum
// bit-length.
type NatTemplate struct {
	TrailingOnes int
	RandomBits   int
	LeadingOnes  int
}

// Bits returns the total bit-length of numbers matching the template.
func (t NatTemplate) Bits() int {
	return t.TrailingOnes + t.RandomBits + t.LeadingOnes
}

var (
	// SeedTemplate shapes the 32-bit seed. The two trailing ones pin the
	// seed to 3 mod 4, which the in-circuit primality gadget relies on.
	SeedTemplate = NatTemplate{TrailingOnes: 2, RandomBits: 29, LeadingOnes: 1}
)

// ExtensionTemplate shapes the random part of one extension step.
func ExtensionTemplate(e PlannedExtension) NatTemplate {
	return NatTemplate{TrailingOnes: 0, RandomBits: e.RandomBits, LeadingOnes: 1}
}

// EntropyStream is a deterministic bit source keyed by a field digest.
// The digest contributes its low hash.BitCapacity bits; when those run
// out the seed is advanced by the expansion hash and the next element's
// bits are consumed, in order. The circuit entropy source mirrors this
// exactly.
type EntropyStream struct {
	current *big.Int
	used    int
}

func NewEntropyStream(digest *big.Int) *EntropyStream {
	return &EntropyStream{current: new(big.Int).Set(digest)}
}

func (s *EntropyStream) nextBit() uint {
	if s.used == hash.BitCapacity {
		s.current = hash.ExpandSeed(s.current)
		s.used = 0
	}
	b := s.current.Bit(s.used)
	s.used++
	return b
}

// GetBitsAsNat draws template.RandomBits fresh bits and assembles the
// templated number, least significant bits first.
func (s *EntropyStream) GetBitsAsNat(t NatTemplate) *big.Int {
	v := new(big.Int)
	pos := 0
	for i := 0; i < t.TrailingOnes; i++ {
		v.SetBit(v, pos, 1)
		pos++
	}
	for i := 0; i < t.RandomBits; i++ {
		if s.nextBit() != 0 {
			v.SetBit(v, pos, 1)
		}
		pos++
	}
	for i := 0; i < t.LeadingOnes; i++ {
		v.SetBit(v, pos, 1)
		pos++
	}
	return v
}
