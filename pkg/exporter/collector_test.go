// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func publishedTestSnapshot() *SnapshotPublisher {
	publisher := NewSnapshotPublisher()
	publisher.Publish(&MetricSnapshot{
		Usage: []UsageRecord{
			{Owner: "alice", Bucket: "photos", Category: "get_obj",
				Ops: 15, SuccessfulOps: 14, BytesSent: 150, BytesReceived: 20},
		},
		Buckets: []BucketUsage{
			{Bucket: "photos", Owner: "alice", Zonegroup: "zg-1",
				UsageBytes: 2048, UtilizedBytes: 1500, ObjectCount: 4,
				QuotaBytes: 5000, QuotaMaxObjects: 200},
		},
		Quotas: []UserQuota{
			{ProjectName: "Alice", ProjectID: "alice",
				LimitBytes: 1000, UsedBytes: 250, UtilizedPercent: 25},
		},
		ScrapeDuration: 0.5,
	})
	return publisher
}

func TestCollectorExposesNothingBeforeFirstCycle(t *testing.T) {
	collector := NewCollector(NewSnapshotPublisher())
	assert.Equal(t, 0, testutil.CollectAndCount(collector))
}

func TestCollectorUsageMetrics(t *testing.T) {
	collector := NewCollector(publishedTestSnapshot())

	expected := `
		# HELP radosgw_usage_ops_total Number of operations
		# TYPE radosgw_usage_ops_total counter
		radosgw_usage_ops_total{bucket="photos",category="get_obj",owner="alice"} 15
		# HELP radosgw_usage_successful_ops_total Number of successful operations
		# TYPE radosgw_usage_successful_ops_total counter
		radosgw_usage_successful_ops_total{bucket="photos",category="get_obj",owner="alice"} 14
		# HELP radosgw_usage_sent_bytes_total Bytes sent by the RADOSGW
		# TYPE radosgw_usage_sent_bytes_total counter
		radosgw_usage_sent_bytes_total{bucket="photos",category="get_obj",owner="alice"} 150
		# HELP radosgw_usage_received_bytes_total Bytes received by the RADOSGW
		# TYPE radosgw_usage_received_bytes_total counter
		radosgw_usage_received_bytes_total{bucket="photos",category="get_obj",owner="alice"} 20
	`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"radosgw_usage_ops_total",
		"radosgw_usage_successful_ops_total",
		"radosgw_usage_sent_bytes_total",
		"radosgw_usage_received_bytes_total")
	assert.NoError(t, err)
}

func TestCollectorBucketMetrics(t *testing.T) {
	collector := NewCollector(publishedTestSnapshot())

	expected := `
		# HELP radosgw_usage_bucket_bytes Bucket used bytes
		# TYPE radosgw_usage_bucket_bytes gauge
		radosgw_usage_bucket_bytes{bucket="photos",owner="alice",zonegroup="zg-1"} 2048
		# HELP radosgw_usage_bucket_utilized_bytes Bucket utilized bytes
		# TYPE radosgw_usage_bucket_utilized_bytes gauge
		radosgw_usage_bucket_utilized_bytes{bucket="photos",owner="alice",zonegroup="zg-1"} 1500
		# HELP radosgw_usage_bucket_objects Number of objects in bucket
		# TYPE radosgw_usage_bucket_objects gauge
		radosgw_usage_bucket_objects{bucket="photos",owner="alice",zonegroup="zg-1"} 4
		# HELP radosgw_usage_bucket_quota_bytes Bucket quota bytes
		# TYPE radosgw_usage_bucket_quota_bytes gauge
		radosgw_usage_bucket_quota_bytes{bucket="photos",owner="alice",zonegroup="zg-1"} 5000
		# HELP radosgw_usage_bucket_quota_max_objects Bucket quota max objects
		# TYPE radosgw_usage_bucket_quota_max_objects gauge
		radosgw_usage_bucket_quota_max_objects{bucket="photos",owner="alice",zonegroup="zg-1"} 200
	`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"radosgw_usage_bucket_bytes",
		"radosgw_usage_bucket_utilized_bytes",
		"radosgw_usage_bucket_objects",
		"radosgw_usage_bucket_quota_bytes",
		"radosgw_usage_bucket_quota_max_objects")
	assert.NoError(t, err)
}

func TestCollectorQuotaAndDurationMetrics(t *testing.T) {
	collector := NewCollector(publishedTestSnapshot())

	expected := `
		# HELP radosgw_user_quota_utilized Percent of radosgw quota utilized
		# TYPE radosgw_user_quota_utilized gauge
		radosgw_user_quota_utilized{project_id="alice",project_name="Alice"} 25
		# HELP radosgw_user_quota_limit Limit of radosgw quota
		# TYPE radosgw_user_quota_limit gauge
		radosgw_user_quota_limit{project_id="alice",project_name="Alice"} 1000
		# HELP radosgw_user_quota_used Usage of radosgw quota
		# TYPE radosgw_user_quota_used gauge
		radosgw_user_quota_used{project_id="alice",project_name="Alice"} 250
		# HELP radosgw_usage_scrape_duration_seconds Amount of time each scrape takes
		# TYPE radosgw_usage_scrape_duration_seconds gauge
		radosgw_usage_scrape_duration_seconds 0.5
	`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"radosgw_user_quota_utilized",
		"radosgw_user_quota_limit",
		"radosgw_user_quota_used",
		"radosgw_usage_scrape_duration_seconds")
	assert.NoError(t, err)
}

func TestCollectorScrapeCountMatchesSnapshot(t *testing.T) {
	collector := NewCollector(publishedTestSnapshot())

	// 4 usage + 5 bucket + 3 quota + 1 duration
	assert.Equal(t, 13, testutil.CollectAndCount(collector))
}
