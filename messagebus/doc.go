// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - fan out of marketplace events
//
// the market broadcasts each committed change and the publisher
// forwards it to ZeroMQ subscribers, an event that finds a listener's
// queue full is lost for that listener and the sender logs a warning
package messagebus
