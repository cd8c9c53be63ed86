// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config provides centralized configuration management for the feed
operator service.

# Configuration Sources

Configuration loads in three layers, via Koanf v2, lowest to highest priority:

  - Built-in defaults
  - An optional YAML config file (config.yaml, or the path in CONFIG_PATH)
  - Environment variables

# Configuration Structure

  - ServerConfig: HTTP server bind address, port, and timeouts
  - SignerConfig: Ed25519 private key (hex or PEM) and the minimum accepted DP-1 version
  - AuthConfig: write-path authentication mode, shared secret, and JWT settings
  - StorageConfig: KV Port backend selection (badger, etcd, memory)
  - QueueConfig: Queue Port backend selection (nats, memory)
  - LoggingConfig: log level and output format

# Key Environment Variables

	SERVER_HOST, HTTP_PORT
	SIGNER_PRIVATE_KEY_HEX or SIGNER_PRIVATE_KEY_PEM, MIN_DP_VERSION
	AUTH_MODE, API_SECRET, JWT_PUBLIC_KEY, JWT_JWKS_URL, JWT_ISSUER, JWT_AUDIENCE
	STORAGE_PROVIDER, BADGER_PATH, ETCD_ENDPOINTS, ETCD_PREFIX
	QUEUE_PROVIDER, NATS_URL, NATS_STREAM_NAME, NATS_SUBJECTS
	SELF_HOSTED_DOMAINS
	LOG_LEVEL, LOG_FORMAT

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatalf("failed to load config: %v", err)
	}

# Validation

Validate() checks required fields given the selected providers (e.g.
BADGER_PATH is required only when STORAGE_PROVIDER=badger), rejects malformed
NATS/JWKS URLs, and enforces mutual exclusivity between the signer's hex and
PEM key forms.

# Thread Safety

Config is immutable after LoadWithKoanf() returns and is safe for concurrent
read access from multiple goroutines.
*/
package config
