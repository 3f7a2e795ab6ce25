// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package pocklington

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/primecert/hash2prime/common"
	"github.com/primecert/hash2prime/common/hash"
)

func TestEntropyStreamDrawsLowBitsFirst(t *testing.T) {
	t.Parallel()
	digest, ok := new(big.Int).SetString("1234567890abcdef", 16)
	assert.True(t, ok)
	s := NewEntropyStream(digest)
	drawn := s.GetBitsAsNat(NatTemplate{RandomBits: 16})
	assert.Equal(t, common.LowKBits(digest, 16), drawn)
}

func TestEntropyStreamDeterministic(t *testing.T) {
	t.Parallel()
	digest := big.NewInt(424242)
	a, b := NewEntropyStream(digest), NewEntropyStream(digest)
	for i := 0; i < 4; i++ {
		assert.Equal(t, a.GetBitsAsNat(SeedTemplate), b.GetBitsAsNat(SeedTemplate))
	}
}

func TestEntropyStreamCrossesSeedBoundary(t *testing.T) {
	t.Parallel()
	digest := big.NewInt(99)
	s := NewEntropyStream(digest)
	// More bits than one field element carries forces at least one
	// expansion step; the tail must come from the next chain element.
	wide := s.GetBitsAsNat(NatTemplate{RandomBits: hash.BitCapacity + 40})
	next := hash.ExpandSeed(digest)
	gotTail := new(big.Int).Rsh(wide, hash.BitCapacity)
	assert.Equal(t, common.LowKBits(next, 40), gotTail)
	assert.Equal(t, common.LowKBits(digest, hash.BitCapacity), common.LowKBits(wide, hash.BitCapacity))
}

func TestSeedTemplateShape(t *testing.T) {
	t.Parallel()
	assert.Equal(t, seedBits, SeedTemplate.Bits())
	for _, digest := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(0xfeedface)} {
		seed := NewEntropyStream(digest).GetBitsAsNat(SeedTemplate)
		assert.Equal(t, seedBits, seed.BitLen())
		assert.Equal(t, uint64(3), new(big.Int).Mod(seed, big.NewInt(4)).Uint64())
	}
}

func TestExtensionTemplateShape(t *testing.T) {
	t.Parallel()
	tpl := ExtensionTemplate(PlannedExtension{NonceBits: 9, RandomBits: 20})
	assert.Equal(t, 21, tpl.Bits())
	v := NewEntropyStream(big.NewInt(5)).GetBitsAsNat(tpl)
	assert.Equal(t, 21, v.BitLen(), "leading one pins the bit-length")
}
