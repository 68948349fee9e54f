// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/rgw-usage-exporter/pkg/exporter/rgwadmin"
)

// UsageRecord holds the merged usage-log counters for one
// (owner, bucket, category) triple within a single poll cycle.
type UsageRecord struct {
	Owner         string `json:"owner"`
	Bucket        string `json:"bucket"`
	Category      string `json:"category"`
	Ops           uint64 `json:"ops"`
	SuccessfulOps uint64 `json:"successful_ops"`
	BytesSent     uint64 `json:"bytes_sent"`
	BytesReceived uint64 `json:"bytes_received"`
}

// BucketUsage is the canonical per-bucket capacity record, normalized
// across gateway releases.
type BucketUsage struct {
	Bucket          string `json:"bucket"`
	Owner           string `json:"owner"`
	Zonegroup       string `json:"zonegroup"`
	UsageBytes      uint64 `json:"usage_bytes"`
	UtilizedBytes   uint64 `json:"utilized_bytes"`
	ObjectCount     uint64 `json:"object_count"`
	QuotaBytes      uint64 `json:"quota_bytes"`
	QuotaMaxObjects uint64 `json:"quota_max_objects"`
}

// UserQuota is the quota utilization record for one user with quota
// enforcement configured.
type UserQuota struct {
	ProjectName     string  `json:"project_name"`
	ProjectID       string  `json:"project_id"`
	LimitBytes      uint64  `json:"limit_bytes"`
	UsedBytes       uint64  `json:"used_bytes"`
	UtilizedPercent float64 `json:"utilized_percent"`
}

// MetricSnapshot is the fully assembled result of one poll cycle. It is
// never mutated after publication; the next cycle supersedes it wholesale.
type MetricSnapshot struct {
	Usage          []UsageRecord `json:"usage"`
	Buckets        []BucketUsage `json:"buckets"`
	Quotas         []UserQuota   `json:"quotas"`
	ScrapeDuration float64       `json:"scrape_duration"`
	CollectedAt    time.Time     `json:"collected_at"`
}

// AdminClient is the slice of the Admin Ops API the snapshot builder
// depends on.
type AdminClient interface {
	GetUsage(ctx context.Context) (rgwadmin.Usage, error)
	ListBucketStats(ctx context.Context) ([]json.RawMessage, error)
	GetUserIDs(ctx context.Context) ([]string, error)
	GetUserQuota(ctx context.Context, uid string) (rgwadmin.UserQuotaSpec, error)
	GetUserStats(ctx context.Context, uid string) (rgwadmin.UserInfo, error)
}

// buildSnapshot drives one full poll cycle. Each of the three top-level
// sources degrades independently: usage logging disabled server-side is an
// expected operating mode, so a failed usage fetch yields an empty usage
// list while bucket and quota metrics are still collected.
func buildSnapshot(ctx context.Context, client AdminClient) *MetricSnapshot {
	start := time.Now()
	snap := &MetricSnapshot{CollectedAt: start}

	usage, err := client.GetUsage(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Msg("usage fetch failed; usage metrics are empty this cycle")
	} else {
		snap.Usage = mergeUsage(usage.Entries)
	}

	stats, err := client.ListBucketStats(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Msg("bucket stats fetch failed; bucket metrics are empty this cycle")
	} else {
		for _, raw := range stats {
			if usage, ok := normalizeBucketStats(raw); ok {
				snap.Buckets = append(snap.Buckets, usage)
			}
		}
		sort.Slice(snap.Buckets, func(i, j int) bool {
			if snap.Buckets[i].Bucket != snap.Buckets[j].Bucket {
				return snap.Buckets[i].Bucket < snap.Buckets[j].Bucket
			}
			return snap.Buckets[i].Owner < snap.Buckets[j].Owner
		})
	}

	userIDs, err := client.GetUserIDs(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Msg("user listing failed; quota metrics are empty this cycle")
	} else {
		for _, uid := range userIDs {
			if quota, ok := evaluateUserQuota(ctx, client, uid); ok {
				snap.Quotas = append(snap.Quotas, quota)
			}
		}
		sort.Slice(snap.Quotas, func(i, j int) bool {
			return snap.Quotas[i].ProjectID < snap.Quotas[j].ProjectID
		})
	}

	snap.ScrapeDuration = time.Since(start).Seconds()
	return snap
}
