// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package hash provides the field-element hashing used by the
// hash-to-prime pipeline. Every function here has an in-circuit
// counterpart in crypto/zkp/pocklington that must produce bit-identical
// results, which is why the constructions are limited to MiMC over the
// BN254 scalar field.
package hash

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

const (
	// BitCapacity is the number of uniform low-order bits drawn from a
	// field element by the entropy stream. One bit below the field size
	// so every pattern of BitCapacity bits is reachable.
	BitCapacity = fr.Bits - 1
)

// NonceMixTag domain-separates the secondary nonce-mixing hash from the
// primary input hash. The primary hash never sees this tag, so the two
// act as independent functions even though both are MiMC.
var NonceMixTag = new(big.Int).SetBytes([]byte("hash2prime/nonce-mix"))

// Modulus returns the BN254 scalar field modulus.
func Modulus() *big.Int {
	return fr.Modulus()
}

// FieldHasher hashes a sequence of field elements to a field element.
type FieldHasher interface {
	Hash(inputs []*big.Int) *big.Int
}

// MiMCHasher is the default FieldHasher. Its circuit counterpart is
// zkppocklington.MiMCHasher.
type MiMCHasher struct{}

func (MiMCHasher) Hash(inputs []*big.Int) *big.Int {
	h := mimc.NewMiMC()
	for _, in := range inputs {
		var e fr.Element
		e.SetBigInt(in)
		b := e.Bytes()
		h.Write(b[:])
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// MixNonce applies the secondary hash to a nonce counter. Only the low
// bits of the result are used by callers; mixing first prevents an
// adversary from steering those bits by choosing nonces directly.
func MixNonce(nonce uint64) *big.Int {
	h := mimc.NewMiMC()
	var tag, e fr.Element
	tag.SetBigInt(NonceMixTag)
	tb := tag.Bytes()
	h.Write(tb[:])
	e.SetUint64(nonce)
	b := e.Bytes()
	h.Write(b[:])
	return new(big.Int).SetBytes(h.Sum(nil))
}

// ExpandSeed advances the entropy stream's seed chain by one element.
func ExpandSeed(seed *big.Int) *big.Int {
	h := mimc.NewMiMC()
	var e fr.Element
	e.SetBigInt(seed)
	b := e.Bytes()
	h.Write(b[:])
	return new(big.Int).SetBytes(h.Sum(nil))
}
