// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package zkppocklington

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/rangecheck"
	"github.com/pkg/errors"
)

func init() {
	solver.RegisterHint(DivMod32Hint)
}

// mr32Bases makes the strong probable prime test exact on 32 bits.
var mr32Bases = [...]uint64{2, 7, 61}

// DivMod32Hint computes q, r for a single-word division. Inputs: [v, n].
func DivMod32Hint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != 2 || inputs[1].Sign() == 0 {
		return errors.New("malformed division hint inputs")
	}
	outputs[0].QuoRem(inputs[0], inputs[1], outputs[1])
	return nil
}

// modMul32 returns x*y mod n for 32-bit operands. The double-width
// product fits the field, so one hint and a range-checked remainder
// suffice.
func modMul32(api frontend.API, x, y, n frontend.Variable) (frontend.Variable, error) {
	prod := api.Mul(x, y)
	outs, err := api.Compiler().NewHint(DivMod32Hint, 2, prod, n)
	if err != nil {
		return nil, errors.Wrap(err, "division witness")
	}
	q, r := outs[0], outs[1]
	api.AssertIsEqual(api.Add(api.Mul(q, n), r), prod)
	rc := rangecheck.New(api)
	rc.Check(q, 33)
	rc.Check(r, 32)
	api.AssertIsLessOrEqual(r, api.Sub(n, 1))
	return r, nil
}

// powMod32 raises a small constant base to the exponent given by bit
// wires, most significant first, modulo n.
func powMod32(api frontend.API, base uint64, expBits []frontend.Variable, n frontend.Variable) (frontend.Variable, error) {
	var acc frontend.Variable = 1
	for i := len(expBits) - 1; i >= 0; i-- {
		sq, err := modMul32(api, acc, acc, n)
		if err != nil {
			return nil, err
		}
		withMul, err := modMul32(api, sq, base, n)
		if err != nil {
			return nil, err
		}
		acc = api.Select(expBits[i], withMul, sq)
	}
	return acc, nil
}

// assertMillerRabin32 enforces that the 32-bit number given by its bit
// wires is prime. The seed template pins the number to 3 mod 4, so
// n - 1 = 2d with d odd and d's bits are simply the seed's bits 1..31;
// the strong test then needs only base^d = ±1 (mod n) per base.
func assertMillerRabin32(api frontend.API, seedBits []frontend.Variable) error {
	n := api.FromBinary(seedBits...)
	nLessOne := api.Sub(n, 1)
	dBits := seedBits[1:]
	var ok frontend.Variable = 1
	for _, base := range mr32Bases {
		x, err := powMod32(api, base, dBits, n)
		if err != nil {
			return err
		}
		isOne := api.IsZero(api.Sub(x, 1))
		isMinusOne := api.IsZero(api.Sub(x, nLessOne))
		ok = api.And(ok, api.Or(isOne, isMinusOne))
	}
	api.AssertIsEqual(ok, 1)
	return nil
}
