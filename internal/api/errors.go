// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cartographus/internal/consumer"
	"github.com/tomtom215/cartographus/internal/coordinator"
)

// Error taxonomy tags (tag -> HTTP status -> meaning).
const (
	TagUnauthorized          = "unauthorized"
	TagInvalidJSON           = "invalid_json"
	TagValidationError       = "validation_error"
	TagProtectedFields       = "protected_fields"
	TagInvalidID             = "invalid_id"
	TagInvalidChannelID      = "invalid_channel_id"
	TagInvalidLimit          = "invalid_limit"
	TagNotFound              = "not_found"
	TagQueueError            = "queue_error"
	TagStorageError          = "storage_error"
	TagInternalError         = "internal_error"
	TagInvalidMessage        = "invalid_message"
	TagInvalidBatch          = "invalid_batch"
	TagProcessingFailed      = "processing_failed"
	TagBatchProcessingFailed = "batch_processing_failed"
)

// writeCoordinatorError maps a Write Coordinator error to the matching
// taxonomy tag and HTTP status: validation and guard errors are recovered
// locally and reported with their specific tag; port errors are not
// recovered and surface as queue_error/storage_error.
func writeCoordinatorError(rw *ResponseWriter, err error) {
	var verr *coordinator.ValidationError
	var pferr *coordinator.ProtectedFieldsError
	var qerr *coordinator.QueueError
	var serr *coordinator.StorageError

	switch {
	case errors.Is(err, coordinator.ErrNotFound):
		rw.Err(http.StatusNotFound, TagNotFound, "resource not found")
	case errors.As(err, &pferr):
		rw.Err(http.StatusBadRequest, TagProtectedFields, pferr.Error())
	case errors.As(err, &verr):
		rw.Err(http.StatusBadRequest, TagValidationError, verr.Error())
	case errors.As(err, &qerr):
		rw.Err(http.StatusInternalServerError, TagQueueError, "failed to publish write operation")
	case errors.As(err, &serr):
		rw.Err(http.StatusInternalServerError, TagStorageError, "storage operation failed")
	default:
		rw.Err(http.StatusInternalServerError, TagInternalError, "internal error")
	}
}

// writeConsumerError maps a Queue Consumer error from the synchronous
// /queues/process-message and /queues/process-batch routes to its tag.
func writeConsumerError(rw *ResponseWriter, err error, batch bool) {
	invalidTag, failedTag := TagInvalidMessage, TagProcessingFailed
	if batch {
		invalidTag, failedTag = TagInvalidBatch, TagBatchProcessingFailed
	}

	if errors.Is(err, consumer.ErrInvalidMessage) {
		rw.Err(http.StatusBadRequest, invalidTag, err.Error())
		return
	}
	rw.Err(http.StatusInternalServerError, failedTag, err.Error())
}
