// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package pocklington

import (
	"math/big"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/primecert/hash2prime/common"
	"github.com/primecert/hash2prime/common/hash"
)

var (
	// ErrSeedComposite means the 32-bit seed drawn for this hash value
	// failed the primality test; the caller retries with a new hash.
	ErrSeedComposite = errors.New("seed failed the 32-bit primality test")
	// ErrExtensionExhausted means an extension step ran out of nonces
	// without finding a Pocklington witness; the caller retries with a
	// new hash.
	ErrExtensionExhausted = errors.New("nonce space exhausted without a valid witness")
)

type (
	// CertificateExtension records one Pocklington step and its witnesses:
	// Result = prior * (Random + mask(Nonce)) + 1, certified by
	// CheckingBase.
	CertificateExtension struct {
		Plan         PlannedExtension
		Random       *big.Int
		Nonce        uint64
		CheckingBase *big.Int
		Result       *big.Int
	}

	// Certificate is the full witness chain. Each extension depends only
	// on the result of its predecessor (BasePrime for the first), so
	// verification is a single forward walk.
	Certificate struct {
		BasePrime  *big.Int
		BaseNonce  uint64
		Extensions []CertificateExtension
	}
)

// Number returns the certified prime: the last extension's result, or the
// base prime if there are no extensions.
func (c *Certificate) Number() *big.Int {
	if n := len(c.Extensions); n > 0 {
		return c.Extensions[n-1].Result
	}
	return c.BasePrime
}

// nonceMask is the low-bit extraction of the mixed nonce shared by the
// search, the verifier and the circuit.
func nonceMask(nonce uint64, nonceBits int) *big.Int {
	return common.LowKBits(hash.MixNonce(nonce), nonceBits)
}

// attemptExtension searches nonce and base values for one planned step
// and appends the found extension to the certificate. On
// ErrExtensionExhausted the certificate is unmodified.
func attemptExtension(cert *Certificate, plan PlannedExtension, random *big.Int) error {
	one := big.NewInt(1)
	prior := cert.Number()
	for nonce := uint64(0); nonce < 1<<plan.NonceBits; nonce++ {
		noncedExtension := new(big.Int).Add(random, nonceMask(nonce, plan.NonceBits))
		// The mask can carry past the template's leading one. Such a
		// factor breaks the per-step bit budget, so the nonce is skipped.
		if noncedExtension.BitLen() != plan.RandomBits+1 {
			continue
		}
		number := new(big.Int).Mul(prior, noncedExtension)
		number.Add(number, one)
		for base := big.NewInt(2); base.Cmp(number) < 0; base.Add(base, one) {
			part := new(big.Int).Exp(base, noncedExtension, number)
			if new(big.Int).Exp(part, prior, number).Cmp(one) != 0 {
				break
			}
			gcd := new(big.Int).GCD(nil, nil, new(big.Int).Sub(part, one), number)
			if gcd.Cmp(one) == 0 {
				cert.Extensions = append(cert.Extensions, CertificateExtension{
					Plan:         plan,
					Random:       random,
					Nonce:        nonce,
					CheckingBase: new(big.Int).Set(base),
					Result:       number,
				})
				return nil
			}
		}
	}
	return ErrExtensionExhausted
}

// executePlan attempts to build a full certificate from one hash digest.
func executePlan(digest *big.Int, plan *Plan, nonce uint64) (*Certificate, error) {
	stream := NewEntropyStream(digest)
	seed := stream.GetBitsAsNat(SeedTemplate)
	if !common.MillerRabin32(seed) {
		return nil, ErrSeedComposite
	}
	cert := &Certificate{
		BasePrime: seed,
		BaseNonce: nonce,
	}
	for i, ext := range plan.Extensions {
		random := stream.GetBitsAsNat(ExtensionTemplate(ext))
		if err := attemptExtension(cert, ext, random); err != nil {
			return nil, errors.Wrapf(err, "extension %d", i)
		}
	}
	return cert, nil
}

// Verify re-checks every relation the certificate asserts, off the search
// path, and reports all violations at once. It is stricter than
// generation requires, since certificates may arrive from outside.
func (c *Certificate) Verify() error {
	var result *multierror.Error
	one := big.NewInt(1)
	if c.BasePrime == nil || c.BasePrime.BitLen() != seedBits {
		result = multierror.Append(result, errors.New("base prime is not 32 bits"))
	}
	if !common.MillerRabin32(c.BasePrime) {
		result = multierror.Append(result, errors.New("base prime is composite"))
	}
	prior := c.BasePrime
	for i, ext := range c.Extensions {
		if ext.Random == nil || ext.CheckingBase == nil || ext.Result == nil {
			result = multierror.Append(result, errors.Errorf("extension %d: nil component", i))
			continue
		}
		if ext.Random.BitLen() != ext.Plan.RandomBits+1 {
			result = multierror.Append(result, errors.Errorf("extension %d: random value does not match the bit budget", i))
		}
		noncedExtension := new(big.Int).Add(ext.Random, nonceMask(ext.Nonce, ext.Plan.NonceBits))
		if noncedExtension.BitLen() != ext.Plan.RandomBits+1 {
			result = multierror.Append(result, errors.Errorf("extension %d: factor does not match the bit budget", i))
		}
		if noncedExtension.Cmp(prior) >= 0 {
			result = multierror.Append(result, errors.Errorf("extension %d: factor exceeds the prior prime", i))
		}
		expect := new(big.Int).Mul(prior, noncedExtension)
		expect.Add(expect, one)
		if expect.Cmp(ext.Result) != 0 {
			result = multierror.Append(result, errors.Errorf("extension %d: result != prior*extension + 1", i))
		}
		part := new(big.Int).Exp(ext.CheckingBase, noncedExtension, ext.Result)
		if new(big.Int).Exp(part, prior, ext.Result).Cmp(one) != 0 {
			result = multierror.Append(result, errors.Errorf("extension %d: carried power is not 1", i))
		}
		gcd := new(big.Int).GCD(nil, nil, new(big.Int).Sub(part, one), ext.Result)
		if gcd.Cmp(one) != 0 {
			result = multierror.Append(result, errors.Errorf("extension %d: base power shares a factor with the result", i))
		}
		prior = ext.Result
	}
	return result.ErrorOrNil()
}
