// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// startPrometheusMetricsServer serves the snapshot collector on /metrics.
// Failure to bind the listener is the one fatal condition of the process.
func startPrometheusMetricsServer(port int, publisher *SnapshotPublisher) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(publisher))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info().Msgf("starting prometheus metrics server on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
		log.Fatal().Err(err).Msg("error starting prometheus metrics server")
	}
}
