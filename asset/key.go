// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bitmark-inc/marketd/fault"
)

// limits on the collection name
const (
	MaxCollectionLength = 64
	idLength            = 8
)

// Key - identifies one asset: the collection it belongs to and its id
// within that collection
type Key struct {
	Collection string `json:"collection"`
	Id         uint64 `json:"id"`
}

// Validate - check the collection name is usable
func (k Key) Validate() error {
	n := len(k.Collection)
	if 0 == n || n > MaxCollectionLength {
		return fault.InvalidCollection
	}
	if !utf8.ValidString(k.Collection) || strings.ContainsRune(k.Collection, '/') {
		return fault.InvalidCollection
	}
	return nil
}

// Pack - storage form: length byte ⧺ collection ⧺ big endian id
//
// keys from the same collection sort together and in id order
func (k Key) Pack() []byte {
	buffer := make([]byte, 1+len(k.Collection)+idLength)
	buffer[0] = byte(len(k.Collection))
	n := copy(buffer[1:], k.Collection)
	binary.BigEndian.PutUint64(buffer[1+n:], k.Id)
	return buffer
}

// Unpack - reverse of Pack
func Unpack(packed []byte) (Key, error) {
	if len(packed) < 1+idLength {
		return Key{}, fault.InvalidPackedKey
	}
	n := int(packed[0])
	if len(packed) != 1+n+idLength {
		return Key{}, fault.InvalidPackedKey
	}
	k := Key{
		Collection: string(packed[1 : 1+n]),
		Id:         binary.BigEndian.Uint64(packed[1+n:]),
	}
	if err := k.Validate(); nil != err {
		return Key{}, err
	}
	return k, nil
}

// String - "collection/id"
func (k Key) String() string {
	return k.Collection + "/" + strconv.FormatUint(k.Id, 10)
}

// Parse - reverse of String
func Parse(s string) (Key, error) {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return Key{}, fault.InvalidCollection
	}
	id, err := strconv.ParseUint(s[i+1:], 10, 64)
	if nil != err {
		return Key{}, err
	}
	k := Key{
		Collection: s[:i],
		Id:         id,
	}
	if err := k.Validate(); nil != err {
		return Key{}, err
	}
	return k, nil
}
