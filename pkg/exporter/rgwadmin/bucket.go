// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package rgwadmin

import (
	"context"
	"encoding/json"
	"net/url"
)

// BucketQuota mirrors the embedded quota sub-record of a bucket-stats
// response. MaxSize is -1 when no quota is configured.
type BucketQuota struct {
	Enabled    *bool  `json:"enabled"`
	MaxSize    *int64 `json:"max_size"`
	MaxObjects *int64 `json:"max_objects"`
}

// BucketUsageRgwMain carries the data-pool counters of a bucket. All
// fields are pointers: which ones a gateway reports depends on its
// release (Hammer only has the kb variants, size_utilized exists since
// Kraken).
type BucketUsageRgwMain struct {
	Size         *uint64 `json:"size"`
	SizeActual   *uint64 `json:"size_actual"`
	SizeUtilized *uint64 `json:"size_utilized"`
	SizeKb       *uint64 `json:"size_kb"`
	SizeKbActual *uint64 `json:"size_kb_actual"`
	NumObjects   *uint64 `json:"num_objects"`
}

type BucketStatsUsage struct {
	RgwMain BucketUsageRgwMain `json:"rgw.main"`
}

// BucketStats is one record of a bucket listing with stats=true.
// Zonegroup is a pointer so "absent on this release" can be told apart
// from an empty value.
type BucketStats struct {
	Bucket      string           `json:"bucket"`
	Owner       string           `json:"owner"`
	Tenant      string           `json:"tenant"`
	Zonegroup   *string          `json:"zonegroup"`
	Usage       BucketStatsUsage `json:"usage"`
	BucketQuota BucketQuota      `json:"bucket_quota"`
}

// ListBucketStats retrieves the per-bucket statistics listing. Elements
// are returned undecoded: very old releases mix plain strings into the
// array, and the caller decides per element what to keep.
func (api *API) ListBucketStats(ctx context.Context) ([]json.RawMessage, error) {
	args := url.Values{}
	args.Add("stats", "true")

	body, err := api.call(ctx, "bucket", args.Encode())
	if err != nil {
		return nil, err
	}

	var stats []json.RawMessage
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, malformedResponse(err, body)
	}

	return stats, nil
}
