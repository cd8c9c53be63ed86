// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordinator

import (
	"fmt"

	"github.com/tomtom215/cartographus/internal/storage"
	"github.com/tomtom215/cartographus/internal/validation"
)

// ErrNotFound is re-exported from storage so callers never need to import
// the storage package just to compare sentinel errors.
var ErrNotFound = storage.ErrNotFound

// ValidationError wraps a schema violation from the Resource Model &
// Validator; api handlers map it to the validation_error tag.
type ValidationError struct {
	Inner *validation.RequestValidationError
}

func (e *ValidationError) Error() string { return e.Inner.Error() }
func (e *ValidationError) Unwrap() error { return e.Inner }

// ProtectedFieldsError reports a PATCH body touching a server-assigned
// field; api handlers map it to the protected_fields tag.
type ProtectedFieldsError struct {
	Fields []string
}

func (e *ProtectedFieldsError) Error() string {
	return validation.ProtectedFieldsError(e.Fields)
}

// QueueError wraps a Queue Port publish failure on the async path; api
// handlers map it to the queue_error tag.
type QueueError struct {
	Err error
}

func (e *QueueError) Error() string { return fmt.Sprintf("coordinator: queue publish failed: %v", e.Err) }
func (e *QueueError) Unwrap() error { return e.Err }

// StorageError wraps a Storage Engine failure on the sync path; api
// handlers map it to the storage_error tag.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("coordinator: storage failed: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
