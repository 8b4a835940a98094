// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/util"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keyLength     = 32
)

// MakeKeyPair - create a new CURVE key pair and write the halves to
// separate files, existing files are never overwritten
func MakeKeyPair(publicKeyFileName string, privateKeyFileName string) error {
	if util.EnsureFileExists(publicKeyFileName) || util.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	// keys are encoded in Z85 (ZeroMQ Base-85 Encoding) see: http://rfc.zeromq.org/spec:32
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}

	publicText := taggedPublic + hex.EncodeToString([]byte(zmq.Z85decode(publicKey))) + "\n"
	privateText := taggedPrivate + hex.EncodeToString([]byte(zmq.Z85decode(privateKey))) + "\n"

	if err = ioutil.WriteFile(publicKeyFileName, []byte(publicText), 0644); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, []byte(privateText), 0600); nil != err {
		os.Remove(publicKeyFileName)
		return err
	}

	return nil
}

// ReadPublicKeyFile - read a "PUBLIC:<hex>" file
func ReadPublicKeyFile(fileName string) ([]byte, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return ParseKey(string(data), taggedPublic)
}

// ReadPrivateKeyFile - read a "PRIVATE:<hex>" file
func ReadPrivateKeyFile(fileName string) ([]byte, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return ParseKey(string(data), taggedPrivate)
}

// ParseKey - decode a tagged key returning its 32 raw bytes
func ParseKey(text string, tag string) ([]byte, error) {
	invalid := fault.InvalidPublicKey
	if taggedPrivate == tag {
		invalid = fault.InvalidPrivateKey
	}

	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, tag) {
		return nil, invalid
	}
	h, err := hex.DecodeString(s[len(tag):])
	if nil != err || keyLength != len(h) {
		return nil, invalid
	}
	return h, nil
}
