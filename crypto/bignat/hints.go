// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bignat

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/pkg/errors"
)

func init() {
	solver.RegisterHint(MultHint, DivModHint, SubHint, InvModHint, BitsHint, CarryHint)
}

// recombine folds little-endian limbs of LimbWidth bits into an integer.
func recombine(limbs []*big.Int) *big.Int {
	v := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		v.Lsh(v, LimbWidth)
		v.Add(v, limbs[i])
	}
	return v
}

func fillLimbs(v *big.Int, outputs []*big.Int) error {
	mask := new(big.Int).Lsh(big.NewInt(1), LimbWidth)
	mask.Sub(mask, big.NewInt(1))
	rest := new(big.Int).Set(v)
	for i := range outputs {
		outputs[i].And(rest, mask)
		rest.Rsh(rest, LimbWidth)
	}
	if rest.Sign() != 0 {
		return errors.New("bignat: value does not fit the output limbs")
	}
	return nil
}

// MultHint computes the limbs of x*y. Inputs: [len(x), x limbs..., y limbs...].
func MultHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) < 3 {
		return errors.New("bignat: malformed MultHint inputs")
	}
	nx := int(inputs[0].Int64())
	if nx <= 0 || nx >= len(inputs)-1 {
		return errors.New("bignat: malformed MultHint operand split")
	}
	x := recombine(inputs[1 : 1+nx])
	y := recombine(inputs[1+nx:])
	return fillLimbs(new(big.Int).Mul(x, y), outputs)
}

// DivModHint computes q, r with x*y = q*m + r, 0 <= r < m.
// Inputs: [len(x), len(y), x limbs..., y limbs..., m limbs...];
// outputs: q limbs followed by len(m) r limbs.
func DivModHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) < 5 {
		return errors.New("bignat: malformed DivModHint inputs")
	}
	nx, ny := int(inputs[0].Int64()), int(inputs[1].Int64())
	nm := len(inputs) - 2 - nx - ny
	if nx <= 0 || ny <= 0 || nm <= 0 || len(outputs) <= nm {
		return errors.New("bignat: malformed DivModHint operand split")
	}
	x := recombine(inputs[2 : 2+nx])
	y := recombine(inputs[2+nx : 2+nx+ny])
	m := recombine(inputs[2+nx+ny:])
	if m.Sign() == 0 {
		return errors.New("bignat: division by zero")
	}
	q, r := new(big.Int).QuoRem(new(big.Int).Mul(x, y), m, new(big.Int))
	nq := len(outputs) - nm
	if err := fillLimbs(q, outputs[:nq]); err != nil {
		return err
	}
	return fillLimbs(r, outputs[nq:])
}

// SubHint computes the limbs of a-b. Inputs: [len(a), a limbs..., b limbs...].
func SubHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) < 3 {
		return errors.New("bignat: malformed SubHint inputs")
	}
	na := int(inputs[0].Int64())
	if na <= 0 || na >= len(inputs)-1 {
		return errors.New("bignat: malformed SubHint operand split")
	}
	a := recombine(inputs[1 : 1+na])
	b := recombine(inputs[1+na:])
	diff := new(big.Int).Sub(a, b)
	if diff.Sign() < 0 {
		return errors.New("bignat: subtraction underflow")
	}
	return fillLimbs(diff, outputs)
}

// InvModHint computes inv = a^-1 mod m and q = (a*inv - 1) / m.
// Inputs: [len(a), a limbs..., m limbs...]; outputs: len(m) inv limbs
// followed by q limbs. Fails if a and m share a factor.
func InvModHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) < 3 {
		return errors.New("bignat: malformed InvModHint inputs")
	}
	na := int(inputs[0].Int64())
	nm := len(inputs) - 1 - na
	if na <= 0 || nm <= 0 || len(outputs) <= nm {
		return errors.New("bignat: malformed InvModHint operand split")
	}
	a := recombine(inputs[1 : 1+na])
	m := recombine(inputs[1+na:])
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return errors.New("bignat: operand is not coprime to the modulus")
	}
	q := new(big.Int).Mul(a, inv)
	q.Sub(q, big.NewInt(1))
	q.Div(q, m)
	if err := fillLimbs(inv, outputs[:nm]); err != nil {
		return err
	}
	return fillLimbs(q, outputs[nm:])
}

// BitsHint decomposes the recombined input limbs into bits, least
// significant first.
func BitsHint(_ *big.Int, inputs, outputs []*big.Int) error {
	v := recombine(inputs)
	if v.BitLen() > len(outputs) {
		return errors.New("bignat: value wider than the requested bit count")
	}
	for i := range outputs {
		outputs[i].SetUint64(uint64(v.Bit(i)))
	}
	return nil
}

// CarryHint computes (v - extra) / base for the carried-equality walk.
// Inputs: [v, extra, base].
func CarryHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != 3 {
		return errors.New("bignat: malformed CarryHint inputs")
	}
	t := new(big.Int).Sub(inputs[0], inputs[1])
	if t.Sign() < 0 {
		return errors.New("bignat: negative carry")
	}
	outputs[0].Div(t, inputs[2])
	return nil
}
