// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command and its parameters
type Message struct {
	Command    string   // type of packed data
	Parameters [][]byte // array of parameters
}

// Queue - a single consumer queue
type Queue struct {
	sync.Mutex
	c      chan Message
	closed bool
}

// BroadcastQueue - a queue delivering every message to all listeners
type BroadcastQueue struct {
	sync.RWMutex
	listeners []chan Message
}

// the exported message queues and their sizes
type busses struct {
	Broadcast *BroadcastQueue // to external subscribers
	TestQueue *Queue          // for testing use
}

// Bus - all available message queues
var Bus = busses{
	Broadcast: &BroadcastQueue{},
	TestQueue: NewQueue(defaultQueueSize),
}

// NewQueue - create a single consumer queue
func NewQueue(size int) *Queue {
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, dropped if the queue is full or released
func (queue *Queue) Send(command string, parameters ...[]byte) {
	queue.Lock()
	defer queue.Unlock()

	if queue.closed {
		return
	}

	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
	default:
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	queue.Lock()
	defer queue.Unlock()
	return queue.c
}

// Release - close the channel so readers terminate
func (queue *Queue) Release() {
	queue.Lock()
	defer queue.Unlock()

	if !queue.closed {
		close(queue.c)
		queue.closed = true
	}
}

// Send - deliver a message to every current listener
//
// a listener whose channel is full misses the message and the number
// of such listeners is returned so the sender can report the loss,
// with no listeners the message is discarded and nothing is missed
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) int {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.RLock()
	defer queue.RUnlock()

	missed := 0
	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			missed += 1
		}
	}
	return missed
}

// Chan - register a new listener
//
// size <= 0 selects the default size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Release - close all listener channels
func (queue *BroadcastQueue) Release() {
	queue.Lock()
	defer queue.Unlock()

	for _, c := range queue.listeners {
		close(c)
	}
	queue.listeners = nil
}

// Unsubscribe - remove and close a single listener
func (queue *BroadcastQueue) Unsubscribe(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, l := range queue.listeners {
		if (<-chan Message)(l) == c {
			close(l)
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			return
		}
	}
}
