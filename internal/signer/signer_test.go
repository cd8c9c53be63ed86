// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package signer

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return hex.EncodeToString(priv.Seed())
}

func TestSigner_SignAndVerify(t *testing.T) {
	s := New(testSeed(t), "")

	resource := map[string]any{
		"id":        "abc",
		"title":     "Test Playlist",
		"signature": "should-be-dropped",
	}

	sig, err := s.Sign(resource)
	require.NoError(t, err)
	assert.Regexp(t, `^ed25519:0x[0-9a-f]+$`, sig)

	ok, err := s.Verify(resource, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSigner_SignIsStableAcrossFieldOrder(t *testing.T) {
	s := New(testSeed(t), "")

	a := map[string]any{"b": 2, "a": 1, "signature": "x"}
	b := map[string]any{"a": 1, "b": 2}

	sigA, err := s.Sign(a)
	require.NoError(t, err)
	sigB, err := s.Sign(b)
	require.NoError(t, err)

	assert.Equal(t, sigA, sigB)
}

func TestSigner_VerifyRejectsTamperedContent(t *testing.T) {
	s := New(testSeed(t), "")

	resource := map[string]any{"title": "Original"}
	sig, err := s.Sign(resource)
	require.NoError(t, err)

	tampered := map[string]any{"title": "Tampered"}
	ok, err := s.Verify(tampered, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSigner_NoKeyConfigured(t *testing.T) {
	s := New("", "")
	_, err := s.Sign(map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

func TestSigner_InvalidHexKeyLength(t *testing.T) {
	s := New("deadbeef", "")
	_, err := s.Sign(map[string]any{"a": 1})
	require.Error(t, err)
}

func TestCanonicalize_DropsSignatureAndSortsKeys(t *testing.T) {
	resource := map[string]any{
		"z":         "last",
		"a":         "first",
		"signature": "ed25519:0xdead",
	}

	out, err := Canonicalize(resource)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"first","z":"last"}`+"\n", string(out))
}

func TestCanonicalize_NestedObjectsAndArrays(t *testing.T) {
	resource := map[string]any{
		"items": []any{
			map[string]any{"b": 1, "a": 2},
		},
	}

	out, err := Canonicalize(resource)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[{"a":2,"b":1}]}`+"\n", string(out))
}

func TestDecodeSignature_RejectsMalformed(t *testing.T) {
	s := New(testSeed(t), "")
	ok, err := s.Verify(map[string]any{"a": 1}, "not-a-signature")
	require.NoError(t, err)
	assert.False(t, ok)
}
