// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package main is the entry point for the DP-1 feed operator server.
//
// The service persists, signs, and serves DP-1 Playlist, PlaylistItem, and
// Channel resources. The server initializes components in the following
// order:
//
//  1. Configuration: load settings from environment variables and an
//     optional config file (Koanf v2).
//  2. Logging: configure zerolog from the loaded configuration.
//  3. Signer: lazily-initialized Ed25519 signer for outgoing resources.
//  4. KV Port (C1): badger, etcd, or in-memory, selected by STORAGE_PROVIDER.
//  5. Queue Port (C2): NATS JetStream via Watermill, or in-memory, selected
//     by QUEUE_PROVIDER.
//  6. Storage Engine: wraps the KV Port with the multi-index schema and
//     channel/playlist resolution.
//  7. Authenticator: none, secret, jwt, or multi, selected by AUTH_MODE.
//  8. Write Coordinator and Queue Consumer.
//  9. HTTP Server: the chi-routed DP-1 API surface.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests to complete (up
// to Server.ShutdownTimeout), then closes the Queue Port and KV Port.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cartographus/internal/api"
	"github.com/tomtom215/cartographus/internal/auth"
	"github.com/tomtom215/cartographus/internal/config"
	"github.com/tomtom215/cartographus/internal/consumer"
	"github.com/tomtom215/cartographus/internal/coordinator"
	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/queue"
	"github.com/tomtom215/cartographus/internal/signer"
	"github.com/tomtom215/cartographus/internal/storage"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("storage_provider", cfg.Storage.Provider).
		Str("queue_provider", cfg.Queue.Provider).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("Starting DP-1 feed operator")

	kv, err := openKV(cfg.Storage)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open KV store")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing KV store")
		}
	}()

	q, err := openQueue(cfg.Queue)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open queue")
	}
	defer func() {
		if err := q.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing queue")
		}
	}()

	engine, err := storage.New(kv, storage.Config{
		SelfHostedDomains: cfg.SelfHostedDomains,
		HTTPTimeout:       10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize storage engine")
	}

	sign := signer.New(cfg.Signer.PrivateKeyHex, cfg.Signer.PrivateKeyPEM)

	authr, err := openAuthenticator(cfg.Auth)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure authenticator")
	}

	coord := coordinator.New(engine, sign, q, cfg.Queue.Subjects, cfg.Signer.MinDPVersion)
	cons := consumer.New(q, engine, cfg.Queue.Subjects, cfg.Queue.ConsumerBatchSize, logging.Logger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumerErrCh := make(chan error, 1)
	go func() {
		consumerErrCh <- cons.Run(ctx)
	}()

	router := api.NewRouter(engine, coord, cons, authr, version)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErrCh:
		if err != nil {
			logging.Error().Err(err).Msg("HTTP server error")
		}
	case err := <-consumerErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Queue consumer stopped unexpectedly")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Error during HTTP server shutdown")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// openKV selects and opens the KV Port implementation named by cfg.Provider.
func openKV(cfg config.StorageConfig) (kvstore.KV, error) {
	switch cfg.Provider {
	case "badger", "":
		return kvstore.OpenBadger(cfg.BadgerPath)
	case "etcd":
		return kvstore.OpenEtcd(cfg.EtcdEndpoints, cfg.EtcdPrefix, cfg.EtcdTimeout)
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// openQueue selects and opens the Queue Port implementation named by
// cfg.Provider.
func openQueue(cfg config.QueueConfig) (queue.Queue, error) {
	switch cfg.Provider {
	case "nats", "":
		return queue.NewNATS(queue.NATSConfig{
			URL:            cfg.NATSURL,
			StreamName:     cfg.StreamName,
			DurableName:    cfg.DurableName,
			MaxReconnects:  -1,
			ReconnectWait:  2 * time.Second,
			AckWaitTimeout: 30 * time.Second,
		}, logging.NewWatermillAdapter())
	case "memory":
		return queue.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown queue provider %q", cfg.Provider)
	}
}

// openAuthenticator selects the write-path Authenticator named by
// cfg.Mode. A nil Authenticator leaves write routes open, suitable only
// for local/dev use with Mode "none".
func openAuthenticator(cfg config.AuthConfig) (auth.Authenticator, error) {
	mode, err := auth.ParseAuthMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case auth.AuthModeNone:
		return nil, nil
	case auth.AuthModeSecret:
		return auth.NewSecretAuthenticator(cfg.APISecret), nil
	case auth.AuthModeJWT:
		manager, err := auth.NewJWTManager(auth.JWTManagerConfig{
			PublicKeyPEM: cfg.JWTPublicKey,
			JWKSURL:      cfg.JWTJWKSURL,
			Issuer:       cfg.JWTIssuer,
			Audience:     cfg.JWTAudience,
		})
		if err != nil {
			return nil, err
		}
		return auth.NewJWTAuthenticator(manager), nil
	case auth.AuthModeMulti:
		manager, err := auth.NewJWTManager(auth.JWTManagerConfig{
			PublicKeyPEM: cfg.JWTPublicKey,
			JWKSURL:      cfg.JWTJWKSURL,
			Issuer:       cfg.JWTIssuer,
			Audience:     cfg.JWTAudience,
		})
		if err != nil {
			return nil, err
		}
		return auth.NewMultiAuthenticator(
			auth.NewSecretAuthenticator(cfg.APISecret),
			auth.NewJWTAuthenticator(manager),
		), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
