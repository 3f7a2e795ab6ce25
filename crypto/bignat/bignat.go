// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package bignat implements multi-limb big-integer arithmetic inside a
// gnark constraint system: allocation, multiplication, subtraction,
// modular exponentiation, coprimality and carried-equality assertions.
// Values are little-endian limbs of LimbWidth bits; each Nat carries a
// per-limb bound (maxWord) so operations know when limbs may have
// outgrown the width and a carried comparison is required.
package bignat

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/rangecheck"
	"github.com/pkg/errors"
)

// LimbWidth is the bit width of one limb.
const LimbWidth = 32

var (
	limbBase = new(big.Int).Lsh(big.NewInt(1), LimbWidth)
	maxLimb  = new(big.Int).Sub(limbBase, big.NewInt(1))
)

// Nat is an unsigned big integer in the constraint system.
type Nat struct {
	api     frontend.API
	Limbs   []frontend.Variable
	maxWord *big.Int
}

func newNat(api frontend.API, limbs []frontend.Variable, maxWord *big.Int) *Nat {
	return &Nat{api: api, Limbs: limbs, maxWord: new(big.Int).Set(maxWord)}
}

// FromBits assembles a Nat from little-endian bit wires.
func FromBits(api frontend.API, bits []frontend.Variable) *Nat {
	nLimbs := (len(bits) + LimbWidth - 1) / LimbWidth
	limbs := make([]frontend.Variable, nLimbs)
	for i := 0; i < nLimbs; i++ {
		hi := (i + 1) * LimbWidth
		if hi > len(bits) {
			hi = len(bits)
		}
		limbs[i] = api.FromBinary(bits[i*LimbWidth : hi]...)
	}
	return newNat(api, limbs, maxLimb)
}

// FromLimb wraps a single variable known to fit `width` bits, range
// checking it.
func FromLimb(api frontend.API, v frontend.Variable, width int) *Nat {
	rangecheck.New(api).Check(v, width)
	bound := new(big.Int).Lsh(big.NewInt(1), uint(width))
	bound.Sub(bound, big.NewInt(1))
	return newNat(api, []frontend.Variable{v}, bound)
}

// FromLimbs wraps little-endian limb variables, range checking each to
// LimbWidth bits.
func FromLimbs(api frontend.API, limbs []frontend.Variable) *Nat {
	rc := rangecheck.New(api)
	own := make([]frontend.Variable, len(limbs))
	for i, l := range limbs {
		rc.Check(l, LimbWidth)
		own[i] = l
	}
	return newNat(api, own, maxLimb)
}

// One is the constant 1 padded to nLimbs limbs.
func One(api frontend.API, nLimbs int) *Nat {
	limbs := make([]frontend.Variable, nLimbs)
	limbs[0] = 1
	for i := 1; i < nLimbs; i++ {
		limbs[i] = 0
	}
	return newNat(api, limbs, big.NewInt(1))
}

func (x *Nat) pad(n int) []frontend.Variable {
	limbs := make([]frontend.Variable, n)
	for i := range limbs {
		if i < len(x.Limbs) {
			limbs[i] = x.Limbs[i]
		} else {
			limbs[i] = 0
		}
	}
	return limbs
}

// Add is limbwise addition without carry propagation; the growth is
// recorded in maxWord.
func (x *Nat) Add(y *Nat) *Nat {
	n := len(x.Limbs)
	if len(y.Limbs) > n {
		n = len(y.Limbs)
	}
	xl, yl := x.pad(n), y.pad(n)
	limbs := make([]frontend.Variable, n)
	for i := range limbs {
		limbs[i] = x.api.Add(xl[i], yl[i])
	}
	mw := new(big.Int).Add(x.maxWord, y.maxWord)
	return newNat(x.api, limbs, mw)
}

// Shift adds a small constant into the low limb, for the *p + 1 step.
func (x *Nat) Shift(c uint64) *Nat {
	limbs := make([]frontend.Variable, len(x.Limbs))
	copy(limbs, x.Limbs)
	limbs[0] = x.api.Add(limbs[0], c)
	mw := new(big.Int).Add(x.maxWord, new(big.Int).SetUint64(c))
	return newNat(x.api, limbs, mw)
}

// rawMult is the limb convolution of x and y. Limbs overflow LimbWidth;
// only maxWord tracks their true bound.
func (x *Nat) rawMult(y *Nat) *Nat {
	nx, ny := len(x.Limbs), len(y.Limbs)
	limbs := make([]frontend.Variable, nx+ny-1)
	for i := range limbs {
		limbs[i] = frontend.Variable(0)
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			limbs[i+j] = x.api.Add(limbs[i+j], x.api.Mul(x.Limbs[i], y.Limbs[j]))
		}
	}
	short := nx
	if ny < nx {
		short = ny
	}
	mw := new(big.Int).Mul(x.maxWord, y.maxWord)
	mw.Mul(mw, big.NewInt(int64(short)))
	return newNat(x.api, limbs, mw)
}

// Mult returns x*y with carry-normalized limbs. The product limbs are
// allocated by hint and bound to the convolution by carried equality.
func (x *Nat) Mult(y *Nat) (*Nat, error) {
	nx, ny := len(x.Limbs), len(y.Limbs)
	ins := make([]frontend.Variable, 0, 1+nx+ny)
	ins = append(ins, nx)
	ins = append(ins, x.Limbs...)
	ins = append(ins, y.Limbs...)
	limbs, err := x.api.Compiler().NewHint(MultHint, nx+ny, ins...)
	if err != nil {
		return nil, errors.Wrap(err, "product limbs")
	}
	rc := rangecheck.New(x.api)
	for _, l := range limbs {
		rc.Check(l, LimbWidth)
	}
	z := newNat(x.api, limbs, maxLimb)
	if err := equalWhenCarried(x.api, x.rawMult(y), z); err != nil {
		return nil, err
	}
	return z, nil
}

// ModMult returns x*y mod m. The quotient and remainder are allocated by
// hint; the defining relation x*y = q*m + r is enforced by carried
// equality. The remainder's limbs are range checked but r < m is not:
// the terminal equality checks of a modular chain pin the reduced value.
func (x *Nat) ModMult(y, m *Nat) (*Nat, error) {
	nx, ny, nm := len(x.Limbs), len(y.Limbs), len(m.Limbs)
	nq := nx + ny - nm + 1
	if nq < 1 {
		nq = 1
	}
	ins := make([]frontend.Variable, 0, 2+nx+ny+nm)
	ins = append(ins, nx, ny)
	ins = append(ins, x.Limbs...)
	ins = append(ins, y.Limbs...)
	ins = append(ins, m.Limbs...)
	outs, err := x.api.Compiler().NewHint(DivModHint, nq+nm, ins...)
	if err != nil {
		return nil, errors.Wrap(err, "quotient and remainder limbs")
	}
	rc := rangecheck.New(x.api)
	for _, l := range outs {
		rc.Check(l, LimbWidth)
	}
	q := newNat(x.api, outs[:nq], maxLimb)
	r := newNat(x.api, outs[nq:], maxLimb)
	rhs := q.rawMult(m).Add(r)
	if err := equalWhenCarried(x.api, x.rawMult(y), rhs); err != nil {
		return nil, err
	}
	return r, nil
}

// PowMod returns x^e mod m by square-and-multiply over e's bit wires,
// most significant first. The constraint topology depends only on the
// number of exponent bits.
func (x *Nat) PowMod(expBits []frontend.Variable, m *Nat) (*Nat, error) {
	acc := One(x.api, len(m.Limbs))
	for i := len(expBits) - 1; i >= 0; i-- {
		sq, err := acc.ModMult(acc, m)
		if err != nil {
			return nil, err
		}
		withMul, err := sq.ModMult(x, m)
		if err != nil {
			return nil, err
		}
		acc = Select(x.api, expBits[i], withMul, sq)
	}
	return acc, nil
}

// Sub returns x-y, which must be non-negative for the witness to solve.
func (x *Nat) Sub(y *Nat) (*Nat, error) {
	nx := len(x.Limbs)
	ins := make([]frontend.Variable, 0, 1+nx+len(y.Limbs))
	ins = append(ins, nx)
	ins = append(ins, x.Limbs...)
	ins = append(ins, y.Limbs...)
	limbs, err := x.api.Compiler().NewHint(SubHint, nx, ins...)
	if err != nil {
		return nil, errors.Wrap(err, "difference limbs")
	}
	rc := rangecheck.New(x.api)
	for _, l := range limbs {
		rc.Check(l, LimbWidth)
	}
	diff := newNat(x.api, limbs, maxLimb)
	if err := equalWhenCarried(x.api, y.Add(diff), x); err != nil {
		return nil, err
	}
	return diff, nil
}

// Decompose allocates nBits bit wires for x and binds them to it,
// returning the bits and the recomposed carry-normalized Nat.
func (x *Nat) Decompose(nBits int) ([]frontend.Variable, *Nat, error) {
	bits, err := x.api.Compiler().NewHint(BitsHint, nBits, x.Limbs...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "bit decomposition")
	}
	for _, b := range bits {
		x.api.AssertIsBoolean(b)
	}
	clean := FromBits(x.api, bits)
	if err := equalWhenCarried(x.api, x, clean); err != nil {
		return nil, nil, err
	}
	return bits, clean, nil
}

// AssertCoprime enforces gcd(x, m) == 1 by exhibiting a modular inverse:
// x*inv = q*m + 1.
func (x *Nat) AssertCoprime(m *Nat) error {
	nx, nm := len(x.Limbs), len(m.Limbs)
	ins := make([]frontend.Variable, 0, 1+nx+nm)
	ins = append(ins, nx)
	ins = append(ins, x.Limbs...)
	ins = append(ins, m.Limbs...)
	outs, err := x.api.Compiler().NewHint(InvModHint, nm+nx, ins...)
	if err != nil {
		return errors.Wrap(err, "modular inverse limbs")
	}
	rc := rangecheck.New(x.api)
	for _, l := range outs {
		rc.Check(l, LimbWidth)
	}
	inv := newNat(x.api, outs[:nm], maxLimb)
	q := newNat(x.api, outs[nm:], maxLimb)
	rhs := q.rawMult(m).Add(One(x.api, 1))
	return equalWhenCarried(x.api, x.rawMult(inv), rhs)
}

// AssertEqual enforces that x and y represent the same integer, whatever
// their limb bounds.
func (x *Nat) AssertEqual(y *Nat) error {
	return equalWhenCarried(x.api, x, y)
}

// Select returns a when bit is 1, b otherwise.
func Select(api frontend.API, bit frontend.Variable, a, b *Nat) *Nat {
	n := len(a.Limbs)
	if len(b.Limbs) > n {
		n = len(b.Limbs)
	}
	al, bl := a.pad(n), b.pad(n)
	limbs := make([]frontend.Variable, n)
	for i := range limbs {
		limbs[i] = api.Select(bit, al[i], bl[i])
	}
	mw := a.maxWord
	if b.maxWord.Cmp(mw) > 0 {
		mw = b.maxWord
	}
	return newNat(api, limbs, mw)
}

// equalWhenCarried enforces that two limb sequences denote the same
// integer by propagating carries limb to limb (the xJsnark comparison).
// A per-limb offset of maxWord keeps every intermediate non-negative;
// the running division remainder of the accumulated offsets is folded
// into each step's equation and the final carry must consume them
// exactly.
func equalWhenCarried(api frontend.API, a, b *Nat) error {
	n := len(a.Limbs)
	if len(b.Limbs) > n {
		n = len(b.Limbs)
	}
	al, bl := a.pad(n), b.pad(n)
	mw := a.maxWord
	if b.maxWord.Cmp(mw) > 0 {
		mw = b.maxWord
	}
	carryBits := new(big.Int).Lsh(mw, 1).BitLen() - LimbWidth
	if carryBits < 1 {
		carryBits = 1
	}
	var carryIn frontend.Variable = 0
	extra := new(big.Int)
	for i := 0; i < n; i++ {
		extra.Add(extra, mw)
		extraMod := new(big.Int).Mod(extra, limbBase)
		extra.Div(extra, limbBase)
		v := api.Sub(api.Add(carryIn, al[i], mw), bl[i])
		outs, err := api.Compiler().NewHint(CarryHint, 1, v, extraMod, limbBase)
		if err != nil {
			return errors.Wrap(err, "carry limb")
		}
		carry := outs[0]
		api.AssertIsEqual(v, api.Add(api.Mul(carry, limbBase), extraMod))
		if i < n-1 {
			api.ToBinary(carry, carryBits)
		} else {
			api.AssertIsEqual(carry, extra)
		}
		carryIn = carry
	}
	return nil
}
