// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/marketd/messagebus"
	"github.com/bitmark-inc/marketd/zmqutil"
)

const (
	broadcasterZapDomain = "publish"
	heartbeatCommand     = "heart"
	heartbeatInterval    = 60 * time.Second
	queueSize            = 1000
)

// sender is the part of a zmq socket used to publish
type sender interface {
	SendMessageDontwait(parts ...interface{}) (int, error)
}

type broadcaster struct {
	log      *logger.L
	socket4  *zmq.Socket
	socket6  *zmq.Socket
	sockets  []sender
	interval time.Duration
}

func (brdc *broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []string) error {

	log := logger.New("broadcaster")
	brdc.log = log
	brdc.interval = heartbeatInterval

	log.Info("initialising…")

	var err error
	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	brdc.sockets = brdc.sockets[:0]
	if nil != brdc.socket4 {
		brdc.sockets = append(brdc.sockets, brdc.socket4)
	}
	if nil != brdc.socket6 {
		brdc.sockets = append(brdc.sockets, brdc.socket6)
	}
	return nil
}

// Run - background process interface
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	queue := messagebus.Bus.Broadcast.Chan(queueSize)
	defer messagebus.Bus.Broadcast.Unsubscribe(queue)

	heartbeat := time.NewTicker(brdc.interval)
	defer heartbeat.Stop()

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case <-heartbeat.C:
			brdc.send(heartbeatCommand, []byte(time.Now().UTC().Format(time.RFC3339)))
		case item := <-queue:
			brdc.send(item.Command, item.Parameters...)
		}
	}
	log.Info("shutting down…")

	if nil != brdc.socket4 {
		brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
	}
	log.Info("stopped")
}

// send a multipart message: command first then each parameter
//
// a slow subscriber must never stall the market so sends do not wait
func (brdc *broadcaster) send(command string, parameters ...[]byte) {
	parts := make([]interface{}, 0, 1+len(parameters))
	parts = append(parts, command)
	for _, p := range parameters {
		parts = append(parts, p)
	}

	for _, socket := range brdc.sockets {
		if _, err := socket.SendMessageDontwait(parts...); nil != err {
			brdc.log.Errorf("send: %q  error: %s", command, err)
		}
	}
}
