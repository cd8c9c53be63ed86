// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/cartographus/internal/models"
)

// didKeyPattern matches a did:key identifier encoded as base58 (Bitcoin
// alphabet, excluding 0, O, I, l) per the curator/publisher key format.
var didKeyPattern = regexp.MustCompile(`^did:key:z[1-9A-HJ-NP-Za-km-z]+$`)

var registerCustomValidatorsOnce sync.Once

// registerCustomValidators wires the didkey tag into the singleton
// validator. Called lazily so package init order never matters.
func registerCustomValidators() {
	registerCustomValidatorsOnce.Do(func() {
		_ = GetValidator().RegisterValidation("didkey", func(fl validator.FieldLevel) bool {
			return didKeyPattern.MatchString(fl.Field().String())
		})
	})
}

// ValidatePlaylistInput runs struct-tag validation over a caller-supplied
// playlist body plus the dpVersion semver gate.
func ValidatePlaylistInput(in *models.PlaylistInput, minDPVersion string) *RequestValidationError {
	registerCustomValidators()
	if err := ValidateStruct(in); err != nil {
		return err
	}
	if err := models.ValidateDPVersion(in.DPVersion, minDPVersion); err != nil {
		return &RequestValidationError{errors: []ValidationError{{
			field:   "dpVersion",
			tag:     "semver",
			value:   in.DPVersion,
			message: err.Error(),
		}}}
	}
	return nil
}

// ValidateChannelInput runs struct-tag validation over a caller-supplied
// channel body.
func ValidateChannelInput(in *models.ChannelInput) *RequestValidationError {
	registerCustomValidators()
	return ValidateStruct(in)
}

// ValidatePlaylist validates a fully-formed Playlist fetched from an
// external URL, matching the schema a local create/replace produces.
func ValidatePlaylist(p *models.Playlist) *RequestValidationError {
	registerCustomValidators()
	return ValidateStruct(p)
}

// ValidateChannel validates a fully-formed Channel.
func ValidateChannel(c *models.Channel) *RequestValidationError {
	registerCustomValidators()
	return ValidateStruct(c)
}

// NewFieldError builds a single-field RequestValidationError for callers
// outside this package that need to surface a non-struct-tag check (e.g.
// the dpVersion semver gate re-applied after a PATCH merge) through the
// same validation_error shape.
func NewFieldError(field, tag string, value any, message string) *RequestValidationError {
	return &RequestValidationError{errors: []ValidationError{{
		field:   field,
		tag:     tag,
		value:   value,
		message: message,
	}}}
}

// ProtectedFieldsError formats the message shape from the protected_fields
// error tag: "Cannot update protected fields: id, slug. ...".
func ProtectedFieldsError(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	joined := fields[0]
	for _, f := range fields[1:] {
		joined += ", " + f
	}
	return fmt.Sprintf("Cannot update protected fields: %s. These fields are server-assigned and cannot be modified.", joined)
}
