// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return priv, string(pemBytes)
}

func signTestToken(t *testing.T, priv *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{RegisteredClaims: claims})
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func TestJWTManager_ValidateToken(t *testing.T) {
	priv, pubPEM := generateTestKeyPair(t)
	manager, err := NewJWTManager(JWTManagerConfig{
		PublicKeyPEM: pubPEM,
		Issuer:       "dp1-feed",
		Audience:     "dp1-clients",
	})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		token := signTestToken(t, priv, jwt.RegisteredClaims{
			Subject:   "operator-1",
			Issuer:    "dp1-feed",
			Audience:  jwt.ClaimStrings{"dp1-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		})

		claims, err := manager.ValidateToken(t.Context(), token)
		require.NoError(t, err)
		require.Equal(t, "operator-1", claims.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestToken(t, priv, jwt.RegisteredClaims{
			Subject:   "operator-1",
			Issuer:    "dp1-feed",
			Audience:  jwt.ClaimStrings{"dp1-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		_, err := manager.ValidateToken(t.Context(), token)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := signTestToken(t, priv, jwt.RegisteredClaims{
			Subject:   "operator-1",
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{"dp1-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		_, err := manager.ValidateToken(t.Context(), token)
		require.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signTestToken(t, priv, jwt.RegisteredClaims{
			Issuer:    "dp1-feed",
			Audience:  jwt.ClaimStrings{"dp1-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		_, err := manager.ValidateToken(t.Context(), token)
		require.Error(t, err)
	})
}

func TestNewJWTManager_RequiresKeyOrJWKS(t *testing.T) {
	_, err := NewJWTManager(JWTManagerConfig{})
	require.Error(t, err)
}
