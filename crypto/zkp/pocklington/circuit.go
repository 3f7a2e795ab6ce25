// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package zkppocklington re-derives a hash-to-prime certificate inside a
// gnark constraint system. The circuit recomputes the hash, the entropy
// stream and every Pocklington relation the native builder searched for;
// the search products themselves (the hash counter, per-extension nonces
// and checking bases) enter as witnesses taken from an already-built
// certificate. The circuit never searches: constructing it without a
// valid certificate is a programming error, and a witness violating any
// relation makes the system unsatisfiable.
package zkppocklington

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"

	"github.com/primecert/hash2prime/common"
	"github.com/primecert/hash2prime/common/hash"
	"github.com/primecert/hash2prime/crypto/bignat"
	"github.com/primecert/hash2prime/crypto/pocklington"
)

// Derive emits the constraints of the full derivation for the given plan
// and returns the certified number as a bignat. Its topology is a pure
// function of the plan and the input count.
func Derive(
	api frontend.API,
	inputs []frontend.Variable,
	baseNonce frontend.Variable,
	extensionNonces, checkingBases []frontend.Variable,
	plan *pocklington.Plan,
	hasher CircuitHasher,
) (*bignat.Nat, error) {
	if len(extensionNonces) != len(plan.Extensions) || len(checkingBases) != len(plan.Extensions) {
		return nil, errors.New("witness slices do not match the plan's extension count")
	}
	ins := make([]frontend.Variable, len(inputs), len(inputs)+1)
	copy(ins, inputs)
	ins = append(ins, baseNonce)
	digest, err := hasher.Hash(api, ins)
	if err != nil {
		return nil, errors.Wrap(err, "input hash")
	}
	stream := newEntropySource(api, digest)

	seedBits, err := stream.getBits(pocklington.SeedTemplate)
	if err != nil {
		return nil, err
	}
	if err := assertMillerRabin32(api, seedBits); err != nil {
		return nil, err
	}

	prior := bignat.FromBits(api, seedBits)
	priorExpBits := seedBits
	stepBits := plan.StepBits()
	for i, ext := range plan.Extensions {
		mixed, err := mixNonce(api, extensionNonces[i])
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: nonce mix", i)
		}
		maskBits := canonicalBits(api, mixed)[:ext.NonceBits]
		mask := bignat.FromBits(api, maskBits)

		randomBits, err := stream.getBits(pocklington.ExtensionTemplate(ext))
		if err != nil {
			return nil, err
		}
		random := bignat.FromBits(api, randomBits)
		extBits, extension, err := random.Add(mask).Decompose(ext.RandomBits + 1)
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: factor bits", i)
		}

		base := bignat.FromLimb(api, checkingBases[i], bignat.LimbWidth)
		nLessOne, err := extension.Mult(prior)
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: n - 1", i)
		}
		// Renormalizing n to its known bit-length keeps every modular
		// step below at the tight limb count, and the bits double as
		// the next step's carried exponent.
		nBits, n, err := nLessOne.Shift(1).Decompose(stepBits[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: result bits", i)
		}
		one := bignat.One(api, len(n.Limbs))

		part, err := base.PowMod(extBits, n)
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: base power", i)
		}
		partLessOne, err := part.Sub(one)
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: base power - 1", i)
		}
		if err := partLessOne.AssertCoprime(n); err != nil {
			return nil, errors.Wrapf(err, "extension %d: coprimality", i)
		}
		power, err := part.PowMod(priorExpBits, n)
		if err != nil {
			return nil, errors.Wrapf(err, "extension %d: carried power", i)
		}
		if err := power.AssertEqual(one); err != nil {
			return nil, errors.Wrapf(err, "extension %d: carried power is 1", i)
		}

		prior, priorExpBits = n, nBits
	}
	return prior, nil
}

// Circuit checks that Number (as public 32-bit limbs) is the prime
// derived from Inputs at the configured entropy.
type Circuit struct {
	Inputs          []frontend.Variable
	BaseNonce       frontend.Variable
	ExtensionNonces []frontend.Variable
	CheckingBases   []frontend.Variable
	Number          []frontend.Variable `gnark:",public"`

	Entropy int
}

func (c *Circuit) Define(api frontend.API) error {
	plan, err := pocklington.NewPlan(c.Entropy)
	if err != nil {
		return err
	}
	out, err := Derive(api, c.Inputs, c.BaseNonce, c.ExtensionNonces, c.CheckingBases, plan, MiMCHasher{})
	if err != nil {
		return err
	}
	return out.AssertEqual(bignat.FromLimbs(api, c.Number))
}

// numberLimbs is the limb count of the derived prime for a plan.
func numberLimbs(plan *pocklington.Plan) int {
	stepBits := plan.StepBits()
	return (stepBits[len(stepBits)-1] + bignat.LimbWidth - 1) / bignat.LimbWidth
}

// NewCircuit returns an empty circuit with every slice sized for the
// given input count and entropy, ready for compilation.
func NewCircuit(nInputs, entropy int) (*Circuit, error) {
	plan, err := pocklington.NewPlan(entropy)
	if err != nil {
		return nil, err
	}
	return &Circuit{
		Inputs:          make([]frontend.Variable, nInputs),
		ExtensionNonces: make([]frontend.Variable, len(plan.Extensions)),
		CheckingBases:   make([]frontend.Variable, len(plan.Extensions)),
		Number:          make([]frontend.Variable, numberLimbs(plan)),
		Entropy:         entropy,
	}, nil
}

// NewAssignment runs the native derivation and fills a witness assignment
// from the resulting certificate.
func NewAssignment(inputs []*big.Int, entropy int, hasher hash.FieldHasher) (*Circuit, *pocklington.Certificate, error) {
	cert, err := pocklington.HashToPrime(inputs, entropy, hasher)
	if err != nil {
		return nil, nil, err
	}
	plan, err := pocklington.NewPlan(entropy)
	if err != nil {
		return nil, nil, err
	}
	a := &Circuit{
		Inputs:          make([]frontend.Variable, len(inputs)),
		BaseNonce:       cert.BaseNonce,
		ExtensionNonces: make([]frontend.Variable, len(cert.Extensions)),
		CheckingBases:   make([]frontend.Variable, len(cert.Extensions)),
		Number:          make([]frontend.Variable, numberLimbs(plan)),
		Entropy:         entropy,
	}
	for i, in := range inputs {
		a.Inputs[i] = new(big.Int).Set(in)
	}
	for i, ext := range cert.Extensions {
		a.ExtensionNonces[i] = ext.Nonce
		a.CheckingBases[i] = ext.CheckingBase
	}
	for i, limb := range common.Uint32Limbs(cert.Number(), len(a.Number)) {
		a.Number[i] = limb
	}
	return a, cert, nil
}
