// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// snapshotEnvelope wraps a snapshot with instance metadata for NATS
// consumers that aggregate several exporters.
type snapshotEnvelope struct {
	NodeName   string          `json:"node_name,omitempty"`
	InstanceID string          `json:"instance_id,omitempty"`
	Snapshot   *MetricSnapshot `json:"snapshot"`
}

func publishSnapshotToNATS(nc *nats.Conn, subject string, cfg ExporterConfig, snap *MetricSnapshot) {
	payload, err := json.Marshal(snapshotEnvelope{
		NodeName:   cfg.NodeName,
		InstanceID: cfg.InstanceID,
		Snapshot:   snap,
	})
	if err != nil {
		log.Error().
			Err(err).
			Msg("error marshalling snapshot to JSON")
		return
	}

	if err := nc.Publish(subject, payload); err != nil {
		log.Error().
			Err(err).
			Str("subject", subject).
			Msg("error publishing snapshot to NATS")
	}
}
