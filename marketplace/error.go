// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/marketd/asset"
)

// Error - a failed operation with the asset and amount involved
//
// Err is one of the fault package errors so errors.Is and the fault
// class tests see through the wrapper
type Error struct {
	Op     string
	Key    asset.Key
	Amount uint64
	Err    error
}

// Error - "op key: error: amount"
func (e *Error) Error() string {
	s := strings.Builder{}
	s.WriteString(e.Op)
	if "" != e.Key.Collection {
		s.WriteByte(' ')
		s.WriteString(e.Key.String())
	}
	s.WriteString(": ")
	s.WriteString(e.Err.Error())
	if 0 != e.Amount {
		s.WriteString(": ")
		s.WriteString(strconv.FormatUint(e.Amount, 10))
	}
	return s.String()
}

// Unwrap - the underlying fault
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, key asset.Key, amount uint64, err error) error {
	return &Error{
		Op:     op,
		Key:    key,
		Amount: amount,
		Err:    err,
	}
}
