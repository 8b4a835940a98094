// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 1)
	assert.Nil(t, ratelimit.Limit(limiter), "unlimited")

	// burst of zero with a finite rate can never be satisfied
	blocked := rate.NewLimiter(1, 0)
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(blocked), "zero burst")
}

func TestLimitN(t *testing.T) {
	limiter := rate.NewLimiter(1000, 100)

	assert.Nil(t, ratelimit.LimitN(limiter, 10, 100), "within range")
	assert.Equal(t, fault.InvalidCount, ratelimit.LimitN(limiter, 0, 100), "zero count")
	assert.Equal(t, fault.InvalidCount, ratelimit.LimitN(limiter, 101, 100), "over maximum")

	// more than the burst can ever supply
	small := rate.NewLimiter(1000, 5)
	assert.Equal(t, fault.RateLimiting, ratelimit.LimitN(small, 10, 100), "beyond burst")
}

func TestLimitRefusesLongWait(t *testing.T) {
	// one token every ten seconds
	limiter := rate.NewLimiter(0.1, 1)

	assert.Nil(t, ratelimit.Limit(limiter), "first call")
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(limiter), "second call would wait too long")

	page := rate.NewLimiter(1, 10)
	assert.Nil(t, ratelimit.LimitN(page, 10, 100), "full page from burst")
	assert.Equal(t, fault.RateLimiting, ratelimit.LimitN(page, 10, 100), "second page would wait too long")
	assert.Nil(t, ratelimit.LimitN(page, 1, 100), "single entry within the maximum delay")
}
