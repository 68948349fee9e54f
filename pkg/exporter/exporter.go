// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"context"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/rgw-usage-exporter/pkg/exporter/rgwadmin"
)

// Start wires the admin client, scheduler, metrics listener and the
// optional NATS export, then blocks running poll cycles until ctx is
// cancelled. Per-request deadlines beyond the transport timeout are
// deliberately absent: a hung admin call stalls only the next scheduled
// cycle, never snapshot availability.
func Start(ctx context.Context, cfg ExporterConfig) error {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client, err := rgwadmin.New(cfg.AdminURL, cfg.AdminEntry, cfg.AccessKey, cfg.SecretKey, httpClient)
	if err != nil {
		return err
	}

	publisher := NewSnapshotPublisher()
	scheduler := NewScheduler(client, publisher, time.Duration(cfg.Interval)*time.Second)

	if cfg.UseNats {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal().
				Err(err).
				Msg("error connecting to NATS")
		}
		defer nc.Close()

		scheduler.OnPublish(func(snap *MetricSnapshot) {
			publishSnapshotToNATS(nc, cfg.NatsSubject, cfg, snap)
		})
	}

	go startPrometheusMetricsServer(cfg.ListenPort, publisher)

	log.Info().
		Str("admin_url", cfg.AdminURL).
		Int("interval_seconds", cfg.Interval).
		Int("listen_port", cfg.ListenPort).
		Msg("radosgw usage exporter started")

	scheduler.Run(ctx)
	return nil
}
