// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - request throttling for the Market, Custody and
// Node RPC services
//
// each service holds its own token bucket, a request waits for its
// tokens unless the wait would exceed MaximumDelay, a Market.Listings
// page costs one token per entry requested
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/marketd/fault"
)

// MaximumDelay - longest a request is held before it is refused
const MaximumDelay = 5 * time.Second

// Limit - one token for a single market or custody call
func Limit(limiter *rate.Limiter) error {
	return reserve(limiter, 1)
}

// LimitN - count tokens for a page of count entries
//
// a page size outside 1..maximumCount is charged as a single call and
// refused with InvalidCount
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return reserve(limiter, count)
}

func reserve(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.RateLimiting
	}
	delay := r.Delay()
	if delay > MaximumDelay {
		r.Cancel()
		return fault.RateLimiting
	}
	time.Sleep(delay)
	return nil
}
