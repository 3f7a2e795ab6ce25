// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package zkppocklington

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/primecert/hash2prime/common/hash"
)

// CircuitHasher is the in-circuit counterpart of hash.FieldHasher. An
// implementation must produce, for allocated inputs, the same field
// element its native twin produces for the input values.
type CircuitHasher interface {
	Hash(api frontend.API, inputs []frontend.Variable) (frontend.Variable, error)
}

// MiMCHasher mirrors hash.MiMCHasher.
type MiMCHasher struct{}

func (MiMCHasher) Hash(api frontend.API, inputs []frontend.Variable) (frontend.Variable, error) {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return nil, err
	}
	h.Write(inputs...)
	return h.Sum(), nil
}

// mixNonce mirrors hash.MixNonce.
func mixNonce(api frontend.API, nonce frontend.Variable) (frontend.Variable, error) {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return nil, err
	}
	h.Write(hash.NonceMixTag, nonce)
	return h.Sum(), nil
}

// expandSeed mirrors hash.ExpandSeed.
func expandSeed(api frontend.API, seed frontend.Variable) (frontend.Variable, error) {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return nil, err
	}
	h.Write(seed)
	return h.Sum(), nil
}
