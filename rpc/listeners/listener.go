// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS JSON-RPC and HTTPS servers
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
)

const (
	minConnectionCount = 1
)

// Listener - a started set of servers
type Listener interface {
	Serve() error
	Close() error
}

// convert each "host:port" to a network and an address for net.Listen
//
// "*:PORT" listens on both IPv4 and IPv6
func parseListenAddresses(addresses []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addresses))
	parsed := make([]string, len(addresses))

	for i, listen := range addresses {
		host, port, err := net.SplitHostPort(strings.TrimSpace(listen))
		if nil != err {
			log.Errorf("listen address: %q  error: %s", listen, err)
			return nil, nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			networks[i] = "tcp"
			host = "::"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen address: %q  error: %s", listen, fault.InvalidIpAddress)
			return nil, nil, fault.InvalidIpAddress
		}
		parsed[i] = net.JoinHostPort(host, port)
	}

	return networks, parsed, nil
}
