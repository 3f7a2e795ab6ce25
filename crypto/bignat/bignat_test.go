// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bignat_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/primecert/hash2prime/common"
	"github.com/primecert/hash2prime/crypto/bignat"
)

func fillLimbs(dst []frontend.Variable, v *big.Int) {
	for i, l := range common.Uint32Limbs(v, len(dst)) {
		dst[i] = l
	}
}

type multCircuit struct {
	X    [2]frontend.Variable
	Y    [2]frontend.Variable
	Want [4]frontend.Variable
}

func (c *multCircuit) Define(api frontend.API) error {
	z, err := bignat.FromLimbs(api, c.X[:]).Mult(bignat.FromLimbs(api, c.Y[:]))
	if err != nil {
		return err
	}
	return z.AssertEqual(bignat.FromLimbs(api, c.Want[:]))
}

func TestMult(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("1122334455667788", 16)
	y, _ := new(big.Int).SetString("99aabbccddeeff00", 16)
	var w multCircuit
	fillLimbs(w.X[:], x)
	fillLimbs(w.Y[:], y)
	fillLimbs(w.Want[:], new(big.Int).Mul(x, y))
	assert.NoError(t, test.IsSolved(&multCircuit{}, &w, ecc.BN254.ScalarField()))

	fillLimbs(w.Want[:], new(big.Int).Add(new(big.Int).Mul(x, y), big.NewInt(1)))
	assert.Error(t, test.IsSolved(&multCircuit{}, &w, ecc.BN254.ScalarField()),
		"an off-by-one product must not solve")
}

type modMultCircuit struct {
	X    [2]frontend.Variable
	Y    [2]frontend.Variable
	M    [2]frontend.Variable
	Want [2]frontend.Variable
}

func (c *modMultCircuit) Define(api frontend.API) error {
	x := bignat.FromLimbs(api, c.X[:])
	y := bignat.FromLimbs(api, c.Y[:])
	m := bignat.FromLimbs(api, c.M[:])
	r, err := x.ModMult(y, m)
	if err != nil {
		return err
	}
	return r.AssertEqual(bignat.FromLimbs(api, c.Want[:]))
}

func TestModMult(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("deadbeef12345678", 16)
	y, _ := new(big.Int).SetString("0badcafe87654321", 16)
	m, _ := new(big.Int).SetString("ffffffffffffffc5", 16) // 64-bit prime
	var w modMultCircuit
	fillLimbs(w.X[:], x)
	fillLimbs(w.Y[:], y)
	fillLimbs(w.M[:], m)
	want := new(big.Int).Mul(x, y)
	want.Mod(want, m)
	fillLimbs(w.Want[:], want)
	assert.NoError(t, test.IsSolved(&modMultCircuit{}, &w, ecc.BN254.ScalarField()))
}

type powModCircuit struct {
	X       [2]frontend.Variable
	ExpBits [8]frontend.Variable
	M       [2]frontend.Variable
	Want    [2]frontend.Variable
}

func (c *powModCircuit) Define(api frontend.API) error {
	for _, b := range c.ExpBits {
		api.AssertIsBoolean(b)
	}
	x := bignat.FromLimbs(api, c.X[:])
	m := bignat.FromLimbs(api, c.M[:])
	z, err := x.PowMod(c.ExpBits[:], m)
	if err != nil {
		return err
	}
	return z.AssertEqual(bignat.FromLimbs(api, c.Want[:]))
}

func TestPowMod(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("123456789abcdef", 16)
	m, _ := new(big.Int).SetString("ffffffffffffffc5", 16)
	for _, e := range []uint64{0, 1, 2, 183, 255} {
		var w powModCircuit
		fillLimbs(w.X[:], x)
		fillLimbs(w.M[:], m)
		for i := range w.ExpBits {
			w.ExpBits[i] = (e >> i) & 1
		}
		fillLimbs(w.Want[:], new(big.Int).Exp(x, new(big.Int).SetUint64(e), m))
		assert.NoError(t, test.IsSolved(&powModCircuit{}, &w, ecc.BN254.ScalarField()), "exponent %d", e)
	}
}

type subCircuit struct {
	X    [2]frontend.Variable
	Y    [2]frontend.Variable
	Want [2]frontend.Variable
}

func (c *subCircuit) Define(api frontend.API) error {
	z, err := bignat.FromLimbs(api, c.X[:]).Sub(bignat.FromLimbs(api, c.Y[:]))
	if err != nil {
		return err
	}
	return z.AssertEqual(bignat.FromLimbs(api, c.Want[:]))
}

func TestSub(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("f00000000000000a", 16)
	y, _ := new(big.Int).SetString("00000000ffffffff", 16)
	var w subCircuit
	fillLimbs(w.X[:], x)
	fillLimbs(w.Y[:], y)
	fillLimbs(w.Want[:], new(big.Int).Sub(x, y))
	assert.NoError(t, test.IsSolved(&subCircuit{}, &w, ecc.BN254.ScalarField()))

	// Swapped operands underflow and the witness hint must refuse.
	fillLimbs(w.X[:], y)
	fillLimbs(w.Y[:], x)
	assert.Error(t, test.IsSolved(&subCircuit{}, &w, ecc.BN254.ScalarField()))
}

type decomposeCircuit struct {
	A    [2]frontend.Variable
	B    [2]frontend.Variable
	Want [3]frontend.Variable
}

func (c *decomposeCircuit) Define(api frontend.API) error {
	// The sum has dirty limbs; Decompose must renormalize them.
	sum := bignat.FromLimbs(api, c.A[:]).Add(bignat.FromLimbs(api, c.B[:]))
	bits, clean, err := sum.Decompose(65)
	if err != nil {
		return err
	}
	if len(bits) != 65 {
		return errors.New("expected 65 bit wires")
	}
	return clean.AssertEqual(bignat.FromLimbs(api, c.Want[:]))
}

func TestDecompose(t *testing.T) {
	t.Parallel()
	a, _ := new(big.Int).SetString("ffffffffffffffff", 16)
	b, _ := new(big.Int).SetString("8000000000000001", 16)
	var w decomposeCircuit
	fillLimbs(w.A[:], a)
	fillLimbs(w.B[:], b)
	fillLimbs(w.Want[:], new(big.Int).Add(a, b))
	assert.NoError(t, test.IsSolved(&decomposeCircuit{}, &w, ecc.BN254.ScalarField()))
}

type coprimeCircuit struct {
	X [2]frontend.Variable
	M [2]frontend.Variable
}

func (c *coprimeCircuit) Define(api frontend.API) error {
	return bignat.FromLimbs(api, c.X[:]).AssertCoprime(bignat.FromLimbs(api, c.M[:]))
}

func TestAssertCoprime(t *testing.T) {
	t.Parallel()
	m, _ := new(big.Int).SetString("fffffffffffffffe", 16)
	x := big.NewInt(1000003) // prime, not a factor of m
	var w coprimeCircuit
	fillLimbs(w.X[:], x)
	fillLimbs(w.M[:], m)
	assert.Equal(t, int64(1), new(big.Int).GCD(nil, nil, x, m).Int64())
	assert.NoError(t, test.IsSolved(&coprimeCircuit{}, &w, ecc.BN254.ScalarField()))

	fillLimbs(w.X[:], big.NewInt(0x12345678)) // even, shares 2 with m
	assert.Error(t, test.IsSolved(&coprimeCircuit{}, &w, ecc.BN254.ScalarField()))
}
