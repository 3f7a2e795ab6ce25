// Copyright © 2025 PrimeCert
//
// This file is part of PrimeCert. The full PrimeCert copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"fmt"
	"math/big"

	"github.com/ipfs/go-log"
)

var Logger = log.Logger("hash2prime")

func FormatBigInt(a *big.Int) string {
	if a == nil {
		return "<nil>"
	}
	var aux = new(big.Int).SetInt64(0xFFFFFFFF)
	return func(i *big.Int) string {
		return new(big.Int).And(i, aux).Text(16)
	}(a)
}

func BigIntsToString(array []*big.Int) string {
	r := ""
	for a, b := range array {
		r = fmt.Sprintf("%s %d:%s ", r, a, FormatBigInt(b))
	}
	return r
}
