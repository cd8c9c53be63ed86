// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import "sort"

// ProtectedFields lists the resource fields that are always server-assigned
// and may never appear in a partial-update (PATCH) request body.
var ProtectedFields = []string{"id", "slug", "created", "signature"}

// CheckProtectedFields inspects a parsed JSON object (as produced by
// unmarshaling a PATCH body into map[string]interface{}) for any protected
// field and returns the offending field names, sorted, for inclusion in a
// protected_fields error message. An empty return means the body is clean.
func CheckProtectedFields(body map[string]interface{}) []string {
	var found []string
	for _, field := range ProtectedFields {
		if _, ok := body[field]; ok {
			found = append(found, field)
		}
	}
	sort.Strings(found)
	return found
}
