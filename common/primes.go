// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

// GetPrimesUpTo generates all prime numbers up to the given limit
// using the Sieve of Eratosthenes algorithm.
func GetPrimesUpTo(limit int) []uint {
	if limit < 2 {
		return []uint{}
	}

	isComposite := make([]bool, limit+1)
	isComposite[0] = true
	isComposite[1] = true

	for p := 2; p*p <= limit; p++ {
		if !isComposite[p] {
			for i := p * p; i <= limit; i += p {
				isComposite[i] = true
			}
		}
	}

	var primes []uint
	for i := 2; i <= limit; i++ {
		if !isComposite[i] {
			primes = append(primes, uint(i))
		}
	}
	return primes
}
