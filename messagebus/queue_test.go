// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/messagebus"
)

func TestQueue(t *testing.T) {
	commands := []string{"c1", "c2", "c3"}

	for _, c := range commands {
		messagebus.Bus.TestQueue.Send(c, []byte(c+"-data"))
	}

	queue := messagebus.Bus.TestQueue.Chan()
	for _, c := range commands {
		received := <-queue
		assert.Equal(t, c, received.Command, "command")
		assert.Equal(t, [][]byte{[]byte(c + "-data")}, received.Parameters, "parameters")
	}
}

func TestBroadcast(t *testing.T) {
	b := &messagebus.BroadcastQueue{}

	// nothing listening so this is dropped
	assert.Equal(t, 0, b.Send("ignored"), "no listeners miss nothing")

	const listeners = 5
	queues := make([]<-chan messagebus.Message, listeners)
	for i := range queues {
		queues[i] = b.Chan(10)
	}

	commands := []string{"listed", "bought", "canceled"}
	for _, c := range commands {
		b.Send(c, []byte("{}"))
	}

	var wg sync.WaitGroup
	counts := make([]int, listeners)
	for i, q := range queues {
		wg.Add(1)
		go func(n int, q <-chan messagebus.Message) {
			defer wg.Done()
			for _, c := range commands {
				received := <-q
				if received.Command == c {
					counts[n] += 1
				}
			}
		}(i, q)
	}
	wg.Wait()

	for i, n := range counts {
		assert.Equal(t, len(commands), n, "listener[%d] count", i)
	}
}

func TestBroadcastFullListener(t *testing.T) {
	b := &messagebus.BroadcastQueue{}
	q := b.Chan(1)

	other := b.Chan(4)

	assert.Equal(t, 0, b.Send("first"), "first missed")
	assert.Equal(t, 1, b.Send("second"), "second missed") // dropped, queue is full
	assert.Equal(t, 2, len(other), "roomy listener still receives")

	received := <-q
	assert.Equal(t, "first", received.Command, "first message")

	select {
	case m := <-q:
		t.Errorf("unexpected message: %q", m.Command)
	default:
	}
}

func TestBroadcastRelease(t *testing.T) {
	b := &messagebus.BroadcastQueue{}
	q1 := b.Chan(0)
	q2 := b.Chan(0)

	b.Unsubscribe(q1)
	_, ok := <-q1
	assert.False(t, ok, "unsubscribed channel open")

	b.Send("still")
	m := <-q2
	assert.Equal(t, "still", m.Command, "remaining listener")

	b.Release()
	_, ok = <-q2
	assert.False(t, ok, "released channel open")

	// no panic on send after release
	b.Send("after")
}

func TestQueueRelease(t *testing.T) {
	b := messagebus.NewQueue(2)
	b.Release()
	_, ok := <-b.Chan()
	assert.False(t, ok, "released queue open")

	b.Send("dropped")
	b.Release()
}
