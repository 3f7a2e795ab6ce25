// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"math/big"
	"math/bits"
)

const (
	// CertPrimeTestN is the number of Miller-Rabin rounds used when
	// re-checking a finished certificate's number. The certificate chain
	// itself is a deterministic proof; this is defense in depth for
	// externally provided values.
	CertPrimeTestN = 20
)

// mr32Bases is the smallest base set for which the strong probable prime
// test is exact on the full 32-bit range (Jaeschke).
var mr32Bases = [...]uint64{2, 7, 61}

// MillerRabin32 reports whether n is prime. It is deterministic and exact
// for all n that fit in 32 bits; larger inputs return false.
func MillerRabin32(n *big.Int) bool {
	if n == nil || n.Sign() <= 0 || n.BitLen() > 32 {
		return false
	}
	return millerRabinU32(n.Uint64())
}

func millerRabinU32(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	// n - 1 = d * 2^s with d odd
	d := n - 1
	s := bits.TrailingZeros64(d)
	d >>= uint(s)
	for _, a := range mr32Bases {
		a %= n
		if a == 0 {
			continue
		}
		x := powModU64(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		witness := true
		for r := 1; r < s; r++ {
			x = x * x % n
			if x == n-1 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// powModU64 computes a^e mod n. Operands must be below 2^32 so that the
// intermediate products fit in a uint64.
func powModU64(a, e, n uint64) uint64 {
	result := uint64(1) % n
	a %= n
	for e > 0 {
		if e&1 == 1 {
			result = result * a % n
		}
		a = a * a % n
		e >>= 1
	}
	return result
}

// ProbablyPrime runs the stdlib probabilistic test (BPSW + extra
// Miller-Rabin rounds) with CertPrimeTestN rounds.
func ProbablyPrime(n *big.Int) bool {
	return n != nil && n.ProbablyPrime(CertPrimeTestN)
}
