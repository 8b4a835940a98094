// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the marketd Lua configuration
//
// the file runs with the standard Lua libraries loaded so it can
// compute paths or read the environment, and it must finish by
// returning a single table which is mapped onto a Go structure
package configuration
