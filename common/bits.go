// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"math/big"
)

// LowKBits returns the k low-order bits of v as a fresh integer.
func LowKBits(v *big.Int, k int) *big.Int {
	e := new(big.Int)
	for i := 0; i < k; i++ {
		bit := v.Bit(i)
		if 0 < bit {
			e.SetBit(e, i, bit)
		}
	}
	return e
}

// Uint32Limbs splits v into 32-bit little-endian limbs. The result has
// exactly nLimbs entries; v must fit.
func Uint32Limbs(v *big.Int, nLimbs int) []*big.Int {
	mask := new(big.Int).SetUint64(0xFFFFFFFF)
	limbs := make([]*big.Int, nLimbs)
	rest := new(big.Int).Set(v)
	for i := 0; i < nLimbs; i++ {
		limbs[i] = new(big.Int).And(rest, mask)
		rest.Rsh(rest, 32)
	}
	return limbs
}

// FromUint32Limbs is the inverse of Uint32Limbs.
func FromUint32Limbs(limbs []*big.Int) *big.Int {
	v := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		v.Lsh(v, 32)
		v.Add(v, limbs[i])
	}
	return v
}
