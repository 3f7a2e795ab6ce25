// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package pocklington derives provably prime integers from hash output.
//
// A number N = p*r + 1 with r < p is prime if p is prime and some base b
// satisfies b^(N-1) = 1 (mod N) and gcd(b^r - 1, N) = 1 (Pocklington's
// criterion). Starting from a 32-bit prime seed drawn from a hash-keyed
// bit stream, the chain of such extensions grows the number while
// consuming fresh pseudorandom bits, and the recorded witnesses form a
// certificate a verifier can check without repeating the search.
package pocklington

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const (
	// minEntropy is the entropy delivered by the 32-bit seed alone; a plan
	// below it cannot exist.
	minEntropy = 29

	seedBits = 32
	// seedFixedBits are forced by the seed template: two trailing ones and
	// one leading one.
	seedFixedBits = 3
)

type (
	// PlannedExtension is the bit budget of a single extension step.
	// RandomBits counts all bits drawn from the entropy stream for the
	// step, NonceBits of which are burned on the witness search.
	PlannedExtension struct {
		NonceBits  int
		RandomBits int
	}

	// Plan fixes, for a target entropy, how many bits of randomness and
	// nonce every step of the derivation consumes. It is immutable once
	// built and shared by the native builder and the circuit verifier.
	Plan struct {
		NonceBits      int
		InitialEntropy int
		Extensions     []PlannedExtension
	}
)

// primeDensity approximates the fraction of `bits`-bit integers that are
// prime, by the second-order truncation of 1/ln(2^bits).
func primeDensity(bits int) float64 {
	log2e := math.Log2(math.E)
	b := float64(bits)
	return log2e/b - log2e*log2e/b/b
}

// primeTrials returns how many uniform `bits`-bit samples must be checked
// to find a prime with all but pFail probability.
func primeTrials(bits int, pFail float64) int {
	p := primeDensity(bits)
	return int(math.Ceil(math.Log(pFail)/math.Log(1.0-p)) + 0.1)
}

// nonceBitsNeeded is the nonce width for which exhausting the nonce space
// finds a `bits`-bit prime with all but 2^-64 probability.
func nonceBitsNeeded(bits int) int {
	trials := primeTrials(bits, math.Pow(2.0, -64))
	return int(math.Ceil(math.Log2(float64(trials))) + 0.1)
}

// NewPlan constructs a plan reaching the target entropy with the smallest
// final bit-length, via dynamic programming over (entropy, bit-length)
// pairs. entropy must be at least 29.
func NewPlan(entropy int) (*Plan, error) {
	if entropy < minEntropy {
		return nil, errors.Errorf("entropy %d below minimum %d", entropy, minEntropy)
	}
	type entry struct {
		marginalEntropy int
		entropy         int
		bits            int
		randomBits      int
		nonceBits       int
	}
	planNonceBits := nonceBitsNeeded(seedBits) - 1
	table := []entry{{
		entropy:         seedBits - seedFixedBits - planNonceBits,
		marginalEntropy: seedBits - seedFixedBits - planNonceBits,
		bits:            seedBits,
	}}
	for table[len(table)-1].entropy < entropy {
		next := entry{
			entropy: table[len(table)-1].entropy + 1,
			bits:    math.MaxInt,
		}
		for i := len(table) - 1; i >= 0; i-- {
			base := table[i]
			randomBits := next.entropy - base.entropy
			// Fixed point: the nonce width depends on the resulting
			// bit-length, which depends on the nonce width.
			errored := false
			nonceBits, nextBits := 0, 0
			for {
				if randomBits+nonceBits+1 >= base.bits {
					errored = true
					break
				}
				nextBits = nonceBits + randomBits + base.bits + 1
				if nonceBits >= nonceBitsNeeded(nextBits) {
					break
				}
				nonceBits++
			}
			if !errored && nextBits < next.bits {
				next.bits = nextBits
				next.marginalEntropy = randomBits
				next.randomBits = randomBits + nonceBits
				next.nonceBits = nonceBits
			}
		}
		if next.bits == math.MaxInt {
			panic(fmt.Sprintf("pocklington: no reachable extension at entropy %d", next.entropy))
		}
		table = append(table, next)
	}
	if last := table[len(table)-1].entropy; last != entropy {
		panic(fmt.Sprintf("pocklington: plan reached entropy %d, wanted %d", last, entropy))
	}
	var extensions []PlannedExtension
	for i := len(table) - 1; i > 0; i -= table[i].marginalEntropy {
		extensions = append(extensions, PlannedExtension{
			NonceBits:  table[i].nonceBits,
			RandomBits: table[i].randomBits,
		})
	}
	for l, r := 0, len(extensions)-1; l < r; l, r = l+1, r-1 {
		extensions[l], extensions[r] = extensions[r], extensions[l]
	}
	return &Plan{
		NonceBits:      planNonceBits,
		InitialEntropy: seedBits - seedFixedBits - planNonceBits,
		Extensions:     extensions,
	}, nil
}

// Entropy recomputes the total pseudorandom bits the plan consumes net of
// nonce bits. It must equal the entropy the plan was built for.
func (p *Plan) Entropy() int {
	total := p.InitialEntropy
	for _, e := range p.Extensions {
		total += e.RandomBits - e.NonceBits
	}
	return total
}

// MaxBits bounds the bit-length of the final number.
func (p *Plan) MaxBits() int {
	total := seedBits
	for _, e := range p.Extensions {
		total += e.RandomBits + 1
	}
	return total
}

// StepBits returns the exact bit-length bound before the first extension
// and after each one. Both drivers use it to size limbs and exponent
// windows, so the circuit topology is a pure function of the plan.
func (p *Plan) StepBits() []int {
	bits := make([]int, len(p.Extensions)+1)
	bits[0] = seedBits
	for i, e := range p.Extensions {
		bits[i+1] = bits[i] + e.RandomBits + 1
	}
	return bits
}
