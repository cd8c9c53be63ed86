// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv("API_SECRET", "s3cret")

	cfg, err := LoadWithKoanf()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "badger", cfg.Storage.Provider)
	assert.Equal(t, "nats", cfg.Queue.Provider)
	assert.Equal(t, "1.0.0", cfg.Signer.MinDPVersion)
}

func TestLoadWithKoanf_EnvOverride(t *testing.T) {
	t.Setenv("API_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_PROVIDER", "memory")

	cfg, err := LoadWithKoanf()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Provider)
}

func TestLoadWithKoanf_SliceFromEnv(t *testing.T) {
	t.Setenv("API_SECRET", "s3cret")
	t.Setenv("SELF_HOSTED_DOMAINS", "feed.example.com, cdn.example.com")

	cfg, err := LoadWithKoanf()
	require.NoError(t, err)

	assert.Equal(t, []string{"feed.example.com", "cdn.example.com"}, cfg.SelfHostedDomains)
}

func TestLoadWithKoanf_FailsValidation(t *testing.T) {
	t.Setenv("AUTH_MODE", "secret")
	t.Setenv("API_SECRET", "")

	_, err := LoadWithKoanf()
	assert.Error(t, err)
}

func TestFindConfigFile_RespectsConfigPathEnvVar(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/custom.yaml"
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 1234\n"), 0o644))

	t.Setenv(ConfigPathEnvVar, path)
	assert.Equal(t, path, findConfigFile())
}
