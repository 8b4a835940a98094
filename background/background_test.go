// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/background"
)

type counter struct {
	ticks   int64
	stopped int32
	label   string
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	prefix := args.(string)
	c.label = prefix + ":running"

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			atomic.AddInt64(&c.ticks, 1)
		}
	}
	atomic.StoreInt32(&c.stopped, 1)
}

func TestStartStop(t *testing.T) {
	first := &counter{}
	second := &counter{}

	p := background.Start(background.Processes{first, second}, "bg")
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	for i, c := range []*counter{first, second} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&c.stopped), "%d: not stopped", i)
		assert.True(t, atomic.LoadInt64(&c.ticks) > 0, "%d: never ran", i)
		assert.Equal(t, "bg:running", c.label, "%d: args not passed", i)
	}

	// ticks must not advance once stopped
	ticks := atomic.LoadInt64(&first.ticks)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, ticks, atomic.LoadInt64(&first.ticks), "ran after stop")
}

func TestStopTwice(t *testing.T) {
	c := &counter{}
	p := background.Start(background.Processes{c}, "x")
	p.Stop()
	p.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&c.stopped), "not stopped")

	var none *background.T
	none.Stop()
}

func TestNoProcesses(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
