// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package signer implements the Canonicalizer & Signer (C3): it produces a
// deterministic byte form of a Playlist or Channel and seals it with an
// Ed25519 signature of the form "ed25519:0x<hex>".
//
// The server key pair is process-wide state, lazily derived on first use
// from configuration and cached for the process lifetime (§4.3).
package signer

import (
	"bytes"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/metrics"
)

// ErrNoSigningKey is returned when neither a hex nor a PEM private key was
// configured at signing time (§4.3 failure mode: configuration-absent is
// fatal at first signing attempt).
var ErrNoSigningKey = errors.New("signer: no ED25519 private key configured")

// Signer holds the process-wide Ed25519 key pair, lazily initialized from
// configuration and immutable afterward.
type Signer struct {
	once    sync.Once
	initErr error
	priv    ed25519.PrivateKey
	pub     ed25519.PublicKey

	hexKey string
	pemKey string
}

// New constructs a Signer from the two mutually-exclusive key encodings
// accepted by configuration. Key material is not parsed until the first
// Sign or Verify call.
func New(privateKeyHex, privateKeyPEM string) *Signer {
	return &Signer{hexKey: privateKeyHex, pemKey: privateKeyPEM}
}

func (s *Signer) init() {
	s.once.Do(func() {
		switch {
		case s.hexKey != "":
			seed, err := hex.DecodeString(s.hexKey)
			if err != nil {
				s.initErr = fmt.Errorf("signer: decode hex private key: %w", err)
				return
			}
			priv, err := privateKeyFromSeed(seed)
			if err != nil {
				s.initErr = err
				return
			}
			s.priv = priv
		case s.pemKey != "":
			priv, err := privateKeyFromPEM(s.pemKey)
			if err != nil {
				s.initErr = err
				return
			}
			s.priv = priv
		default:
			s.initErr = ErrNoSigningKey
			return
		}
		s.pub = s.priv.Public().(ed25519.PublicKey)
	})
}

func privateKeyFromSeed(seed []byte) (ed25519.PrivateKey, error) {
	switch len(seed) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(seed), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(seed), nil
	default:
		return nil, fmt.Errorf("signer: hex private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(seed))
	}
}

func privateKeyFromPEM(pemStr string) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("signer: invalid PEM block for private key")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("signer: parse PKCS8 private key: %w", err)
	}
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("signer: PEM key is not an Ed25519 private key")
	}
	return priv, nil
}

// PublicKey returns the process-wide public key, initializing it on first
// call if necessary.
func (s *Signer) PublicKey() (ed25519.PublicKey, error) {
	s.init()
	if s.initErr != nil {
		return nil, s.initErr
	}
	return s.pub, nil
}

// Sign canonicalizes resource (expected to be a Playlist or Channel
// marshaled to a JSON object, with its own "signature" field already
// cleared by the caller) and returns "ed25519:0x<hex>" over the canonical
// bytes.
func (s *Signer) Sign(resource any) (string, error) {
	s.init()
	if s.initErr != nil {
		return "", s.initErr
	}

	canonical, err := Canonicalize(resource)
	if err != nil {
		return "", fmt.Errorf("signer: canonicalize: %w", err)
	}

	sig := ed25519.Sign(s.priv, canonical)
	metrics.RecordSign()
	return "ed25519:0x" + hex.EncodeToString(sig), nil
}

// Verify reports whether signature is a valid Ed25519 signature over the
// canonical bytes of resource under the signer's public key. resource must
// already have its "signature" field cleared.
func (s *Signer) Verify(resource any, signature string) (bool, error) {
	pub, err := s.PublicKey()
	if err != nil {
		return false, err
	}

	raw, ok := decodeSignature(signature)
	if !ok {
		return false, nil
	}

	canonical, err := Canonicalize(resource)
	if err != nil {
		return false, fmt.Errorf("signer: canonicalize: %w", err)
	}

	return ed25519.Verify(pub, canonical, raw), nil
}

func decodeSignature(signature string) ([]byte, bool) {
	const prefix = "ed25519:0x"
	if len(signature) <= len(prefix) || signature[:len(prefix)] != prefix {
		return nil, false
	}
	raw, err := hex.DecodeString(signature[len(prefix):])
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Canonicalize produces the deterministic byte form used as signing input:
// JSON-encode resource, drop any top-level "signature" field, recursively
// sort object keys, and append a trailing newline. This is the exact rule a
// verifier must re-apply (§4.3, §9).
//
// Field order instability in encoding/json-family marshalers is the reason
// for the recursive re-sort rather than relying on struct field order.
func Canonicalize(resource any) ([]byte, error) {
	data, err := json.Marshal(resource)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	delete(obj, "signature")

	canonical, err := canonicalizeValue(obj)
	if err != nil {
		return nil, err
	}

	return append(canonical, '\n'), nil
}

func canonicalizeValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			valBytes, err := canonicalizeValue(val[k])
			if err != nil {
				return nil, err
			}
			buf.Write(valBytes)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil

	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			itemBytes, err := canonicalizeValue(item)
			if err != nil {
				return nil, err
			}
			buf.Write(itemBytes)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	default:
		return json.Marshal(val)
	}
}
