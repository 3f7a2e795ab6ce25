// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package pocklington

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/primecert/hash2prime/common"
	"github.com/primecert/hash2prime/common/hash"
)

// ErrDerivationExhausted means the outer hash-counter space was exhausted
// without completing a certificate. The nonce budget makes this outcome
// negligible (< 2^-64 per step) but it is a defined result, not a crash.
var ErrDerivationExhausted = errors.New("hash counter space exhausted")

// HashToPrime deterministically derives a certified prime from the given
// field elements. A counter is appended to the inputs and incremented
// until some hash value yields a complete certificate under the plan for
// the requested entropy.
func HashToPrime(inputs []*big.Int, entropy int, hasher hash.FieldHasher) (*Certificate, error) {
	plan, err := NewPlan(entropy)
	if err != nil {
		return nil, err
	}
	common.Logger.Debugf("hash-to-prime: inputs%s entropy %d", common.BigIntsToString(inputs), entropy)
	ins := make([]*big.Int, len(inputs), len(inputs)+1)
	copy(ins, inputs)
	counter := new(big.Int)
	ins = append(ins, counter)
	for nonce := uint64(0); nonce < 1<<plan.NonceBits; nonce++ {
		digest := hasher.Hash(ins)
		cert, err := executePlan(digest, plan, nonce)
		if err == nil {
			common.Logger.Debugf("hash-to-prime: counter %d accepted, number ..%s", nonce, common.FormatBigInt(cert.Number()))
			return cert, nil
		}
		common.Logger.Debugf("hash-to-prime: counter %d rejected: %v", nonce, err)
		counter.Add(counter, big.NewInt(1))
		counter.Mod(counter, hash.Modulus())
	}
	return nil, ErrDerivationExhausted
}
