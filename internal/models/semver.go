// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ValidateDPVersion parses dpVersion as semver and rejects 0.x releases or
// anything below minDPVersion.
func ValidateDPVersion(dpVersion, minDPVersion string) error {
	v, err := semver.NewVersion(dpVersion)
	if err != nil {
		return fmt.Errorf("Invalid semantic version format: %s", dpVersion)
	}

	min, err := semver.NewVersion(minDPVersion)
	if err != nil {
		return fmt.Errorf("invalid configured minimum DP-1 version: %s", minDPVersion)
	}

	if v.Major() == 0 || v.LessThan(min) {
		return fmt.Errorf("below minimum required version %s", minDPVersion)
	}

	return nil
}
