// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - client connection slots
//
// the TLS JSON-RPC listener and the HTTPS /marketd/rpc endpoint share
// one counter so their combined connections stay under the configured
// maximum, Node.Info and /marketd/details report it
package counter

import (
	"sync/atomic"
)

// Counter - client connections currently being served
type Counter uint64

// Acquire - take a slot, false if limit connections are already open
//
// the count never passes limit, even briefly
func (c *Counter) Acquire(limit uint64) bool {
	for {
		n := atomic.LoadUint64((*uint64)(c))
		if n >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), n, n+1) {
			return true
		}
	}
}

// Release - give back a slot taken by Acquire
func (c *Counter) Release() {
	atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - connections open now
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
