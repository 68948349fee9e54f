// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package rgwadmin

import (
	"context"
	"encoding/json"
	"net/url"
)

type UsageCategory struct {
	Category      string `json:"category"`
	Ops           uint64 `json:"ops"`
	SuccessfulOps uint64 `json:"successful_ops"`
	BytesSent     uint64 `json:"bytes_sent"`
	BytesReceived uint64 `json:"bytes_received"`
}

type UsageBucket struct {
	Bucket     string          `json:"bucket"`
	Owner      string          `json:"owner"`
	Time       string          `json:"time"`
	Epoch      uint64          `json:"epoch"`
	Categories []UsageCategory `json:"categories"`
}

// UsageEntry is one bin of usage-log data for a single account. The owner
// field name changed across releases: current gateways report "owner",
// Luminous and older report "user". An account whose log spans more than
// 1000 records is split across several entries.
type UsageEntry struct {
	Owner   string        `json:"owner"`
	User    string        `json:"user"`
	Buckets []UsageBucket `json:"buckets"`
}

type Usage struct {
	Entries []UsageEntry `json:"entries"`
}

// GetUsage retrieves the raw usage log entries from the object store.
func (api *API) GetUsage(ctx context.Context) (Usage, error) {
	args := url.Values{}
	args.Add("show-summary", "false")

	body, err := api.call(ctx, "usage", args.Encode())
	if err != nil {
		return Usage{}, err
	}

	var usage Usage
	if err := json.Unmarshal(body, &usage); err != nil {
		return Usage{}, malformedResponse(err, body)
	}

	return usage, nil
}
