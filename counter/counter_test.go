// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/counter"
)

func TestAcquireRelease(t *testing.T) {
	var c counter.Counter
	assert.Equal(t, uint64(0), c.Uint64(), "not zero at start")

	assert.True(t, c.Acquire(2), "first slot")
	assert.True(t, c.Acquire(2), "second slot")
	assert.False(t, c.Acquire(2), "over limit")
	assert.Equal(t, uint64(2), c.Uint64(), "refused slot counted")

	c.Release()
	assert.True(t, c.Acquire(2), "slot after release")
	assert.False(t, c.Acquire(0), "zero limit")
}

func TestAcquireNeverPassesLimit(t *testing.T) {
	var c counter.Counter

	const (
		workers = 50
		limit   = 7
	)

	var wg sync.WaitGroup
	var lock sync.Mutex
	granted := 0

	wg.Add(workers)
	for i := 0; i < workers; i += 1 {
		go func() {
			defer wg.Done()
			if c.Acquire(limit) {
				assert.True(t, c.Uint64() <= limit, "over limit while held")
				lock.Lock()
				granted += 1
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, granted, "slots granted")
	assert.Equal(t, uint64(limit), c.Uint64(), "open connections")

	for i := 0; i < limit; i += 1 {
		c.Release()
	}
	assert.Equal(t, uint64(0), c.Uint64(), "not zero at end")
}
