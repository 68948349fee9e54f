// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"sort"

	"github.com/cobaltcore-dev/rgw-usage-exporter/pkg/exporter/rgwadmin"
)

// rootBucketName is the placeholder for usage logged against no bucket
// (account-level operations).
const rootBucketName = "bucket_root"

// unknownOwner is the placeholder for entries carrying neither an "owner"
// nor a "user" field; their counters are kept rather than dropped.
const unknownOwner = "unknown_user"

type usageKey struct {
	owner    string
	bucket   string
	category string
}

type usageCounters struct {
	ops           uint64
	successfulOps uint64
	bytesSent     uint64
	bytesReceived uint64
}

// mergeUsage folds raw usage entries into cumulative counters per
// (owner, bucket, category). The gateway truncates usage logs into bins of
// 1000 records, so one owner may appear in several entries; counters
// accumulate instead of overwriting. The result is sorted so identical
// input always produces an identical record list.
func mergeUsage(entries []rgwadmin.UsageEntry) []UsageRecord {
	totals := make(map[usageKey]usageCounters)

	for _, entry := range entries {
		owner := entry.Owner
		if owner == "" {
			// Luminous and older
			owner = entry.User
		}
		if owner == "" {
			owner = unknownOwner
		}

		for _, bucket := range entry.Buckets {
			name := bucket.Bucket
			if name == "" {
				name = rootBucketName
			}

			for _, category := range bucket.Categories {
				key := usageKey{owner: owner, bucket: name, category: category.Category}
				counters := totals[key]
				counters.ops += category.Ops
				counters.successfulOps += category.SuccessfulOps
				counters.bytesSent += category.BytesSent
				counters.bytesReceived += category.BytesReceived
				totals[key] = counters
			}
		}
	}

	records := make([]UsageRecord, 0, len(totals))
	for key, counters := range totals {
		records = append(records, UsageRecord{
			Owner:         key.owner,
			Bucket:        key.bucket,
			Category:      key.category,
			Ops:           counters.ops,
			SuccessfulOps: counters.successfulOps,
			BytesSent:     counters.bytesSent,
			BytesReceived: counters.bytesReceived,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Owner != records[j].Owner {
			return records[i].Owner < records[j].Owner
		}
		if records[i].Bucket != records[j].Bucket {
			return records[i].Bucket < records[j].Bucket
		}
		return records[i].Category < records[j].Category
	})

	return records
}
