// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered JWT claims this service recognizes. No custom
// claims are required: the subject ("sub") becomes AuthSubject.ID.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTManagerConfig configures JWT verification. Exactly one of PublicKeyPEM
// or JWKSURL must be set.
type JWTManagerConfig struct {
	// PublicKeyPEM is a static RSA public key in PEM format (JWT_PUBLIC_KEY).
	PublicKeyPEM string

	// JWKSURL is a JWKS endpoint polled for rotating RSA keys (JWT_JWKS_URL).
	JWKSURL string

	// Issuer, if set, must match the token's "iss" claim.
	Issuer string

	// Audience, if set, must appear in the token's "aud" claim.
	Audience string

	// HTTPClient is used to fetch JWKS documents. Defaults to a 30s-timeout client.
	HTTPClient *http.Client
}

// JWTManager verifies RS256-signed JWTs against a static public key or a
// JWKS endpoint. It never issues tokens: tokens are minted by an external
// identity provider, this service only verifies them.
type JWTManager struct {
	staticKey *rsa.PublicKey
	jwks      *JWKSCache
	issuer    string
	audience  string
}

// NewJWTManager builds a JWTManager from cfg. Returns an error if neither a
// static key nor a JWKS URL is configured, or if the static key is malformed.
func NewJWTManager(cfg JWTManagerConfig) (*JWTManager, error) {
	m := &JWTManager{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}

	switch {
	case cfg.PublicKeyPEM != "":
		key, err := parseRSAPublicKeyPEM(cfg.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("parse JWT public key: %w", err)
		}
		m.staticKey = key
	case cfg.JWKSURL != "":
		m.jwks = NewJWKSCache(cfg.JWKSURL, cfg.HTTPClient, 15*time.Minute)
	default:
		return nil, errors.New("JWT auth requires either a public key or a JWKS URL")
	}

	return m, nil
}

// ValidateToken verifies tokenString's signature, issuer, audience and
// expiry, and returns its claims.
func (m *JWTManager) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if m.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(m.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		if m.staticKey != nil {
			return m.staticKey, nil
		}

		kid, _ := token.Header["kid"].(string)
		return m.jwks.GetKey(ctx, kid)
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Subject == "" {
		return nil, errors.New("token missing subject claim")
	}

	return claims, nil
}

func parseRSAPublicKeyPEM(pemStr string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaKey, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("PEM key is not an RSA public key")
		}
		return rsaKey, nil
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("not a public key or certificate: %w", err)
	}

	rsaKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate does not contain an RSA public key")
	}
	return rsaKey, nil
}
