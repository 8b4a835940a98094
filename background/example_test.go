// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/marketd/background"
)

type announcer struct {
	started chan struct{}
}

func (a *announcer) Run(args interface{}, shutdown <-chan struct{}) {
	fmt.Printf("start %s\n", args)
	close(a.started)
	<-shutdown
	fmt.Printf("stop %s\n", args)
}

func Example() {
	a := &announcer{
		started: make(chan struct{}),
	}

	p := background.Start(background.Processes{a}, "publisher")
	<-a.started
	p.Stop()

	// Output:
	// start publisher
	// stop publisher
}
