// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/marketd/fault"
)

var (
	errExistsOne     = fault.ExistsError("exists one ")
	errExistsTwo     = fault.ExistsError("exists two")
	errInvalidOne    = fault.InvalidError("invalid one")
	errInvalidTwo    = fault.InvalidError("invalid two")
	errNotFoundOne   = fault.NotFoundError("not found one")
	errNotFoundTwo   = fault.NotFoundError("not found two")
	errPaymentOne    = fault.PaymentError("payment one")
	errPermissionOne = fault.PermissionError("permission one")
	errProcessOne    = fault.ProcessError("process one")
	errProcessTwo    = fault.ProcessError("process two")
)

// wrapped errors must keep their class
type wrapped struct {
	err error
}

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

// test that the various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		exists     bool
		invalid    bool
		notFound   bool
		payment    bool
		permission bool
		process    bool
	}{
		{errExistsOne, true, false, false, false, false, false},
		{errExistsTwo, true, false, false, false, false, false},
		{errInvalidOne, false, true, false, false, false, false},
		{errInvalidTwo, false, true, false, false, false, false},
		{errNotFoundOne, false, false, true, false, false, false},
		{errNotFoundTwo, false, false, true, false, false, false},
		{errPaymentOne, false, false, false, true, false, false},
		{errPermissionOne, false, false, false, false, true, false},
		{errProcessOne, false, false, false, false, false, true},
		{errProcessTwo, false, false, false, false, false, true},
		{&wrapped{errNotFoundOne}, false, false, true, false, false, false},
		{fmt.Errorf("context: %w", errPaymentOne), false, false, false, true, false, false},
		{fault.AlreadyListed, true, false, false, false, false, false},
		{fault.NotListed, false, false, true, false, false, false},
		{fault.NotOwner, false, false, false, false, true, false},
		{fault.PriceNotMet, false, false, false, true, false, false},
		{fault.TransferFailed, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPayment(err) != e.payment {
			t.Errorf("%d: expected 'payment' == %v for err = %v", i, e.payment, err)
		}
		if fault.IsErrPermission(err) != e.permission {
			t.Errorf("%d: expected 'permission' == %v for err = %v", i, e.permission, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
	}
}
