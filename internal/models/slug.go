// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

const maxSlugLength = 64

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a slug from title: lowercase, non-alphanumeric runs
// collapsed to a single hyphen, leading/trailing hyphens trimmed, truncated
// to leave room for a "-" plus four random decimal digits, guaranteeing
// uniqueness via that suffix.
func GenerateSlug(title string) (string, error) {
	base := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")

	const suffixLen = 5 // "-" + 4 digits
	if len(base) > maxSlugLength-suffixLen {
		base = base[:maxSlugLength-suffixLen]
		base = strings.TrimRight(base, "-")
	}

	suffix, err := randomDigits(4)
	if err != nil {
		return "", err
	}

	if base == "" {
		return suffix, nil
	}
	return base + "-" + suffix, nil
}

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0') + byte(d.Int64())
	}
	return string(digits), nil
}
