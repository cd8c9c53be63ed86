// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment
// variables and an optional config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Config is immutable after LoadWithKoanf() and safe for concurrent read access.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Signer  SignerConfig  `koanf:"signer"`
	Auth    AuthConfig    `koanf:"auth"`
	Storage StorageConfig `koanf:"storage"`
	Queue   QueueConfig   `koanf:"queue"`
	Logging LoggingConfig `koanf:"logging"`

	// SelfHostedDomains lists hostnames this deployment serves playlists
	// and channels from. A channel's playlist URL matching one of these
	// domains is resolved locally instead of fetched over HTTP (§4.4.5).
	SelfHostedDomains []string `koanf:"self_hosted_domains"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SignerConfig holds the Ed25519 signing key and semver gate.
type SignerConfig struct {
	// PrivateKeyHex is the hex-encoded Ed25519 private key seed (32 bytes).
	// At most one of PrivateKeyHex or PrivateKeyPEM may be set; with neither,
	// loading succeeds and the first signing attempt fails.
	PrivateKeyHex string `koanf:"private_key_hex"`

	// PrivateKeyPEM is a PKCS#8 PEM-encoded Ed25519 private key.
	PrivateKeyPEM string `koanf:"private_key_pem"`

	// MinDPVersion is the minimum DP-1 semver a playlist/channel must
	// declare to be accepted (§4.7).
	MinDPVersion string `koanf:"min_dp_version"`
}

// AuthConfig holds write-path authentication settings.
type AuthConfig struct {
	// Mode selects the authenticator(s): "none", "secret", "jwt", or "multi".
	Mode string `koanf:"mode"`

	// APISecret is the static bearer token accepted when Mode is "secret" or "multi".
	APISecret string `koanf:"api_secret"`

	// JWTPublicKey is a static RSA public key in PEM format.
	JWTPublicKey string `koanf:"jwt_public_key"`

	// JWTJWKSURL is a JWKS endpoint used instead of a static public key.
	JWTJWKSURL string `koanf:"jwt_jwks_url"`

	// JWTIssuer, if set, must match the token's "iss" claim.
	JWTIssuer string `koanf:"jwt_issuer"`

	// JWTAudience, if set, must appear in the token's "aud" claim.
	JWTAudience string `koanf:"jwt_audience"`
}

// StorageConfig selects and configures the KV Port implementation (C1).
type StorageConfig struct {
	// Provider selects the KV backend: "badger", "etcd", or "memory".
	Provider string `koanf:"provider"`

	BadgerPath string `koanf:"badger_path"`

	EtcdEndpoints []string      `koanf:"etcd_endpoints"`
	EtcdPrefix    string        `koanf:"etcd_prefix"`
	EtcdTimeout   time.Duration `koanf:"etcd_timeout"`
}

// QueueConfig selects and configures the Queue Port implementation (C2).
type QueueConfig struct {
	// Provider selects the queue backend: "nats" or "memory".
	Provider string `koanf:"provider"`

	NATSURL     string `koanf:"nats_url"`
	StreamName  string `koanf:"stream_name"`
	Subjects    string `koanf:"subjects"`
	DurableName string `koanf:"durable_name"`

	// PublishTimeout is loaded (default 5s) but no Queue Port
	// implementation reads it; publish calls are not bounded by it.
	PublishTimeout time.Duration `koanf:"publish_timeout"`

	// ConsumerBatchSize bounds how many messages the consumer drains per poll (§4.6).
	ConsumerBatchSize int `koanf:"consumer_batch_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
