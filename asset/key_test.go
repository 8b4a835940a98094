// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
)

func TestPack(t *testing.T) {
	k := asset.Key{Collection: "cats", Id: 0x0102}
	expected := []byte{4, 'c', 'a', 't', 's', 0, 0, 0, 0, 0, 0, 0x01, 0x02}
	assert.Equal(t, expected, k.Pack(), "packed form")

	u, err := asset.Unpack(expected)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, k, u, "round trip")
}

func TestPackOrder(t *testing.T) {
	a := asset.Key{Collection: "cats", Id: 2}
	b := asset.Key{Collection: "cats", Id: 10}
	c := asset.Key{Collection: "dogs", Id: 1}
	assert.True(t, bytes.Compare(a.Pack(), b.Pack()) < 0, "id order")
	assert.True(t, bytes.Compare(b.Pack(), c.Pack()) < 0, "collection order")
}

func TestUnpackErrors(t *testing.T) {
	tests := []struct {
		packed []byte
		err    error
	}{
		{nil, fault.InvalidPackedKey},
		{[]byte{1, 'a', 0, 0}, fault.InvalidPackedKey},
		{[]byte{2, 'a', 0, 0, 0, 0, 0, 0, 0, 1}, fault.InvalidPackedKey},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 0, 1}, fault.InvalidCollection},
	}
	for i, item := range tests {
		_, err := asset.Unpack(item.packed)
		assert.Equal(t, item.err, err, "%d: unpack error", i)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		collection string
		err        error
	}{
		{"art", nil},
		{strings.Repeat("x", asset.MaxCollectionLength), nil},
		{"", fault.InvalidCollection},
		{strings.Repeat("x", asset.MaxCollectionLength+1), fault.InvalidCollection},
		{"a/b", fault.InvalidCollection},
		{"\xff\xfe", fault.InvalidCollection},
	}
	for i, item := range tests {
		err := asset.Key{Collection: item.collection, Id: 1}.Validate()
		assert.Equal(t, item.err, err, "%d: %q", i, item.collection)
	}
}

func TestText(t *testing.T) {
	k := asset.Key{Collection: "sample", Id: 7}
	assert.Equal(t, "sample/7", k.String(), "string")

	p, err := asset.Parse("sample/7")
	assert.Nil(t, err, "parse")
	assert.Equal(t, k, p, "round trip")

	_, err = asset.Parse("sample")
	assert.Equal(t, fault.InvalidCollection, err, "no separator")

	_, err = asset.Parse("/7")
	assert.Equal(t, fault.InvalidCollection, err, "empty collection")

	_, err = asset.Parse("sample/x")
	assert.NotNil(t, err, "bad id")
}
