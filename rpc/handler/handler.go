// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTPS access to JSON-RPC and read-only status
package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/marketplace"
)

// allow list names, also the configuration keys
const (
	AllowDetails  = "details"
	AllowListing  = "listing"
	AllowProceeds = "proceeds"
)

// Handler - the HTTPS endpoints
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Listing(http.ResponseWriter, *http.Request)
	Proceeds(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// to allow the rpc system to read a request body and write a response
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

type handler struct {
	sync.RWMutex
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	market             marketplace.Marketplace
	count              *counter.Counter
	maximumConnections uint64
	allow              map[string][]*net.IPNet
}

// New - create the HTTPS handler
func New(
	log *logger.L,
	server *rpc.Server,
	start time.Time,
	version string,
	maximumConnections uint64,
	market marketplace.Marketplace,
	count *counter.Counter,
) Handler {
	return &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		market:             market,
		count:              count,
		maximumConnections: maximumConnections,
		allow:              make(map[string][]*net.IPNet),
	}
}

// SetAllow - replace the per-endpoint CIDR allow lists
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.Lock()
	h.allow = allow
	h.Unlock()
}

// Root - matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.Acquire(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Release()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Warnf("rpc request error: %s", err)
	}
}

// Details - node status for GET requests
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if !h.permitted(AllowDetails, w, r) {
		return
	}

	type reply struct {
		Version string          `json:"version"`
		Uptime  string          `json:"uptime"`
		Market  account.Account `json:"market"`
		RPCs    uint64          `json:"rpcs"`
	}

	sendReply(w, reply{
		Version: h.version,
		Uptime:  time.Since(h.start).String(),
		Market:  h.market.Account(),
		RPCs:    h.count.Uint64(),
	})
}

// Listing - GET one listing
//
// query parameters:
//   key=<collection>/<asset id>
func (h *handler) Listing(w http.ResponseWriter, r *http.Request) {
	if !h.permitted(AllowListing, w, r) {
		return
	}

	key, err := asset.Parse(r.URL.Query().Get("key"))
	if nil != err {
		sendBadRequest(w)
		return
	}

	type reply struct {
		Collection string           `json:"collection"`
		AssetId    uint64           `json:"assetId,string"`
		Listed     bool             `json:"listed"`
		Price      uint64           `json:"price,string"`
		Seller     *account.Account `json:"seller,omitempty"`
	}

	l := h.market.GetListing(key)
	result := reply{
		Collection: key.Collection,
		AssetId:    key.Id,
	}
	if l.IsActive() {
		result.Listed = true
		result.Price = l.Price
		result.Seller = &l.Seller
	}
	sendReply(w, result)
}

// Proceeds - GET a seller's balance
//
// query parameters:
//   seller=<base58 account>
func (h *handler) Proceeds(w http.ResponseWriter, r *http.Request) {
	if !h.permitted(AllowProceeds, w, r) {
		return
	}

	seller, err := account.FromBase58(r.URL.Query().Get("seller"))
	if nil != err {
		sendBadRequest(w)
		return
	}

	type reply struct {
		Seller account.Account `json:"seller"`
		Amount uint64          `json:"amount,string"`
	}

	sendReply(w, reply{
		Seller: seller,
		Amount: h.market.GetProceeds(seller),
	})
}

// check method and the remote address against the endpoint's allow list
func (h *handler) permitted(name string, w http.ResponseWriter, r *http.Request) bool {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return false
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil == err {
		if ip := net.ParseIP(host); nil != ip {
			h.RLock()
			allow := h.allow[name]
			h.RUnlock()
			for _, cidr := range allow {
				if cidr.Contains(ip) {
					return true
				}
			}
		}
	}

	h.log.Warnf("deny access: %s  from: %q", name, r.RemoteAddr)
	sendForbidden(w)
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendBadRequest(w http.ResponseWriter) {
	sendError(w, "bad request", http.StatusBadRequest)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
