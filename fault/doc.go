// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// every marketplace rejection has exactly one value here so callers
// and RPC clients can compare errors directly, or with errors.Is when
// an operation adds context around them
package fault
