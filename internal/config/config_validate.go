// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSigner(); err != nil {
		return err
	}

	if err := c.validateAuth(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateQueue(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got: %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateSigner() error {
	hasHex := c.Signer.PrivateKeyHex != ""
	hasPEM := c.Signer.PrivateKeyPEM != ""

	if hasHex && hasPEM {
		return fmt.Errorf("signer: set only one of SIGNER_PRIVATE_KEY_HEX or SIGNER_PRIVATE_KEY_PEM, not both")
	}

	if c.Signer.MinDPVersion == "" {
		return fmt.Errorf("MIN_DP_VERSION is required")
	}

	return nil
}

func (c *Config) validateAuth() error {
	switch c.Auth.Mode {
	case "", "none":
		return nil
	case "secret":
		if c.Auth.APISecret == "" {
			return fmt.Errorf("API_SECRET is required when AUTH_MODE=secret")
		}
		return nil
	case "jwt":
		return c.validateJWTAuth()
	case "multi":
		if c.Auth.APISecret == "" {
			return fmt.Errorf("API_SECRET is required when AUTH_MODE=multi")
		}
		return c.validateJWTAuth()
	default:
		return fmt.Errorf("AUTH_MODE must be one of none, secret, jwt, multi, got: %s", c.Auth.Mode)
	}
}

func (c *Config) validateJWTAuth() error {
	hasKey := c.Auth.JWTPublicKey != ""
	hasJWKS := c.Auth.JWTJWKSURL != ""

	if !hasKey && !hasJWKS {
		return fmt.Errorf("JWT_PUBLIC_KEY or JWT_JWKS_URL is required when AUTH_MODE requires JWT")
	}
	if hasKey && hasJWKS {
		return fmt.Errorf("set only one of JWT_PUBLIC_KEY or JWT_JWKS_URL, not both")
	}

	if hasJWKS {
		if err := validateJWKSURL(c.Auth.JWTJWKSURL); err != nil {
			return fmt.Errorf("JWT_JWKS_URL is invalid: %w", err)
		}
	}

	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Provider {
	case "badger":
		if c.Storage.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORAGE_PROVIDER=badger")
		}
	case "etcd":
		if len(c.Storage.EtcdEndpoints) == 0 {
			return fmt.Errorf("ETCD_ENDPOINTS is required when STORAGE_PROVIDER=etcd")
		}
	case "memory":
		// no required fields
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be one of badger, etcd, memory, got: %s", c.Storage.Provider)
	}
	return nil
}

func (c *Config) validateQueue() error {
	switch c.Queue.Provider {
	case "nats":
		if c.Queue.NATSURL == "" {
			return fmt.Errorf("NATS_URL is required when QUEUE_PROVIDER=nats")
		}
		if err := validateNATSURL(c.Queue.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
		if c.Queue.StreamName == "" {
			return fmt.Errorf("NATS_STREAM_NAME is required when QUEUE_PROVIDER=nats")
		}
	case "memory":
		// no required fields
	default:
		return fmt.Errorf("QUEUE_PROVIDER must be one of nats, memory, got: %s", c.Queue.Provider)
	}

	if c.Queue.ConsumerBatchSize <= 0 {
		return fmt.Errorf("CONSUMER_BATCH_SIZE must be positive, got: %d", c.Queue.ConsumerBatchSize)
	}

	return nil
}

func (c *Config) validateLogging() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of json, console, got: %s", c.Logging.Format)
	}

	return nil
}
