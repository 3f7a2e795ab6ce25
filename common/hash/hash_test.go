// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package hash

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashDeterministic(t *testing.T) {
	t.Parallel()
	h := MiMCHasher{}
	inputs := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	a := h.Hash(inputs)
	b := h.Hash(inputs)
	assert.Equal(t, a, b)
	assert.True(t, a.Cmp(Modulus()) < 0)
	assert.NotEqual(t, a, h.Hash(inputs[:2]))
}

func TestHashReducesInputs(t *testing.T) {
	t.Parallel()
	h := MiMCHasher{}
	v := big.NewInt(42)
	shifted := new(big.Int).Add(v, Modulus())
	assert.Equal(t, h.Hash([]*big.Int{v}), h.Hash([]*big.Int{shifted}))
}

func TestMixNonceDomainSeparated(t *testing.T) {
	t.Parallel()
	h := MiMCHasher{}
	for nonce := uint64(0); nonce < 8; nonce++ {
		mixed := MixNonce(nonce)
		assert.True(t, mixed.Cmp(Modulus()) < 0)
		assert.NotEqual(t, mixed, h.Hash([]*big.Int{new(big.Int).SetUint64(nonce)}))
		assert.NotEqual(t, mixed, MixNonce(nonce+1))
	}
}

func TestExpandSeedChain(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	s := big.NewInt(7)
	for i := 0; i < 32; i++ {
		s = ExpandSeed(s)
		assert.True(t, s.Cmp(Modulus()) < 0)
		key := s.String()
		assert.False(t, seen[key], "seed chain cycled after %d steps", i)
		seen[key] = true
	}
}
