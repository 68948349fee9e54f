// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/rgw-usage-exporter/pkg/exporter/rgwadmin"
)

// normalizeBucketStats resolves one raw bucket-stats record into the
// canonical BucketUsage. Field resolution order per derived value, first
// present wins:
//
//	usage bytes:    size_actual, size_kb_actual*1024, 0
//	utilized bytes: size_utilized, 0 (pre-Kraken releases)
//	object count:   num_objects, 0
//	zonegroup:      zonegroup, "0" (Hammer)
//	quota:          bucket_quota.max_size / max_objects, 0
//
// Records that are not a structured object (Hammer-era junk in the stats
// array) are skipped without error.
func normalizeBucketStats(raw json.RawMessage) (BucketUsage, bool) {
	var stats rgwadmin.BucketStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Debug().Msg("skipping non-object bucket stats record")
		return BucketUsage{}, false
	}

	usage := BucketUsage{
		Bucket:    stats.Bucket,
		Owner:     stats.Owner,
		Zonegroup: "0",
	}

	if stats.Zonegroup != nil {
		usage.Zonegroup = *stats.Zonegroup
	}

	main := stats.Usage.RgwMain
	switch {
	case main.SizeActual != nil:
		usage.UsageBytes = *main.SizeActual
	case main.SizeKbActual != nil:
		usage.UsageBytes = *main.SizeKbActual * 1024
	}

	if main.SizeUtilized != nil {
		usage.UtilizedBytes = *main.SizeUtilized
	}

	if main.NumObjects != nil {
		usage.ObjectCount = *main.NumObjects
	}

	// The gateway reports -1 for unset quota values; absent and unset
	// both normalize to 0.
	if stats.BucketQuota.MaxSize != nil && *stats.BucketQuota.MaxSize > 0 {
		usage.QuotaBytes = uint64(*stats.BucketQuota.MaxSize)
	}
	if stats.BucketQuota.MaxObjects != nil && *stats.BucketQuota.MaxObjects > 0 {
		usage.QuotaMaxObjects = uint64(*stats.BucketQuota.MaxObjects)
	}

	return usage, true
}
