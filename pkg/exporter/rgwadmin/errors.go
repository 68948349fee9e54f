// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package rgwadmin

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 2xx response whose body could not be
// decoded as the expected JSON structure. Check with errors.Is.
var ErrMalformedResponse = errors.New("malformed response from RGW")

// TransportError wraps a network-level failure (DNS, connection refused or
// reset, timeout). The request never produced an HTTP status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("RGW request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response from the gateway, carrying the status
// code and raw body for logging.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("RGW request rejected [%d]: %s", e.StatusCode, e.Body)
}

// malformedResponse wraps a decode failure so callers can match it against
// ErrMalformedResponse while keeping the offending body in the message.
func malformedResponse(err error, body []byte) error {
	return fmt.Errorf("%w: %v. Response: %s", ErrMalformedResponse, err, string(body))
}
