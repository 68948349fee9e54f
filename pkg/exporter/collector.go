// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector renders the latest published snapshot on every scrape. It
// performs no network I/O; before the first cycle completes it exposes no
// metrics at all rather than zeros.
type Collector struct {
	publisher *SnapshotPublisher

	ops           *prometheus.Desc
	successfulOps *prometheus.Desc
	bytesSent     *prometheus.Desc
	bytesReceived *prometheus.Desc

	bucketBytes           *prometheus.Desc
	bucketUtilizedBytes   *prometheus.Desc
	bucketObjects         *prometheus.Desc
	bucketQuotaBytes      *prometheus.Desc
	bucketQuotaMaxObjects *prometheus.Desc

	userQuotaUtilized *prometheus.Desc
	userQuotaLimit    *prometheus.Desc
	userQuotaUsed     *prometheus.Desc

	scrapeDuration *prometheus.Desc
}

func NewCollector(publisher *SnapshotPublisher) *Collector {
	usageLabels := []string{"bucket", "owner", "category"}
	bucketLabels := []string{"bucket", "owner", "zonegroup"}
	quotaLabels := []string{"project_name", "project_id"}

	return &Collector{
		publisher: publisher,

		ops: prometheus.NewDesc("radosgw_usage_ops_total",
			"Number of operations", usageLabels, nil),
		successfulOps: prometheus.NewDesc("radosgw_usage_successful_ops_total",
			"Number of successful operations", usageLabels, nil),
		bytesSent: prometheus.NewDesc("radosgw_usage_sent_bytes_total",
			"Bytes sent by the RADOSGW", usageLabels, nil),
		bytesReceived: prometheus.NewDesc("radosgw_usage_received_bytes_total",
			"Bytes received by the RADOSGW", usageLabels, nil),

		bucketBytes: prometheus.NewDesc("radosgw_usage_bucket_bytes",
			"Bucket used bytes", bucketLabels, nil),
		bucketUtilizedBytes: prometheus.NewDesc("radosgw_usage_bucket_utilized_bytes",
			"Bucket utilized bytes", bucketLabels, nil),
		bucketObjects: prometheus.NewDesc("radosgw_usage_bucket_objects",
			"Number of objects in bucket", bucketLabels, nil),
		bucketQuotaBytes: prometheus.NewDesc("radosgw_usage_bucket_quota_bytes",
			"Bucket quota bytes", bucketLabels, nil),
		bucketQuotaMaxObjects: prometheus.NewDesc("radosgw_usage_bucket_quota_max_objects",
			"Bucket quota max objects", bucketLabels, nil),

		userQuotaUtilized: prometheus.NewDesc("radosgw_user_quota_utilized",
			"Percent of radosgw quota utilized", quotaLabels, nil),
		userQuotaLimit: prometheus.NewDesc("radosgw_user_quota_limit",
			"Limit of radosgw quota", quotaLabels, nil),
		userQuotaUsed: prometheus.NewDesc("radosgw_user_quota_used",
			"Usage of radosgw quota", quotaLabels, nil),

		scrapeDuration: prometheus.NewDesc("radosgw_usage_scrape_duration_seconds",
			"Amount of time each scrape takes", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ops
	ch <- c.successfulOps
	ch <- c.bytesSent
	ch <- c.bytesReceived
	ch <- c.bucketBytes
	ch <- c.bucketUtilizedBytes
	ch <- c.bucketObjects
	ch <- c.bucketQuotaBytes
	ch <- c.bucketQuotaMaxObjects
	ch <- c.userQuotaUtilized
	ch <- c.userQuotaLimit
	ch <- c.userQuotaUsed
	ch <- c.scrapeDuration
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.publisher.Current()
	if snap == nil {
		return
	}

	for _, r := range snap.Usage {
		ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue,
			float64(r.Ops), r.Bucket, r.Owner, r.Category)
		ch <- prometheus.MustNewConstMetric(c.successfulOps, prometheus.CounterValue,
			float64(r.SuccessfulOps), r.Bucket, r.Owner, r.Category)
		ch <- prometheus.MustNewConstMetric(c.bytesSent, prometheus.CounterValue,
			float64(r.BytesSent), r.Bucket, r.Owner, r.Category)
		ch <- prometheus.MustNewConstMetric(c.bytesReceived, prometheus.CounterValue,
			float64(r.BytesReceived), r.Bucket, r.Owner, r.Category)
	}

	for _, b := range snap.Buckets {
		ch <- prometheus.MustNewConstMetric(c.bucketBytes, prometheus.GaugeValue,
			float64(b.UsageBytes), b.Bucket, b.Owner, b.Zonegroup)
		ch <- prometheus.MustNewConstMetric(c.bucketUtilizedBytes, prometheus.GaugeValue,
			float64(b.UtilizedBytes), b.Bucket, b.Owner, b.Zonegroup)
		ch <- prometheus.MustNewConstMetric(c.bucketObjects, prometheus.GaugeValue,
			float64(b.ObjectCount), b.Bucket, b.Owner, b.Zonegroup)
		ch <- prometheus.MustNewConstMetric(c.bucketQuotaBytes, prometheus.GaugeValue,
			float64(b.QuotaBytes), b.Bucket, b.Owner, b.Zonegroup)
		ch <- prometheus.MustNewConstMetric(c.bucketQuotaMaxObjects, prometheus.GaugeValue,
			float64(b.QuotaMaxObjects), b.Bucket, b.Owner, b.Zonegroup)
	}

	for _, q := range snap.Quotas {
		ch <- prometheus.MustNewConstMetric(c.userQuotaUtilized, prometheus.GaugeValue,
			q.UtilizedPercent, q.ProjectName, q.ProjectID)
		ch <- prometheus.MustNewConstMetric(c.userQuotaLimit, prometheus.GaugeValue,
			float64(q.LimitBytes), q.ProjectName, q.ProjectID)
		ch <- prometheus.MustNewConstMetric(c.userQuotaUsed, prometheus.GaugeValue,
			float64(q.UsedBytes), q.ProjectName, q.ProjectID)
	}

	ch <- prometheus.MustNewConstMetric(c.scrapeDuration, prometheus.GaugeValue,
		snap.ScrapeDuration)
}
