// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/rgw-usage-exporter/pkg/exporter"
)

var (
	expConfigFile  string
	expAdminURL    string
	expAdminEntry  string
	expAccessKey   string
	expSecretKey   string
	expListenPort  int
	expInterval    int
	expNodeName    string
	expInstanceID  string
	expNatsURL     string
	expNatsSubject string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the RadosGW usage exporter",
	Run: func(cmd *cobra.Command, args []string) {
		config := exporter.ExporterConfig{
			AdminURL:    expAdminURL,
			AdminEntry:  expAdminEntry,
			AccessKey:   expAccessKey,
			SecretKey:   expSecretKey,
			ListenPort:  expListenPort,
			Interval:    expInterval,
			NodeName:    expNodeName,
			InstanceID:  expInstanceID,
			NatsURL:     expNatsURL,
			NatsSubject: expNatsSubject,
		}

		if expConfigFile != "" {
			fileConfig, err := exporter.LoadConfigFile(expConfigFile)
			if err != nil {
				log.Fatal().
					Err(err).
					Str("config_file", expConfigFile).
					Msg("error loading config file")
			}
			config = applyConfigFileDefaults(config, *fileConfig)
		}

		config = mergeExporterConfigWithEnv(config)
		config = applyDefaults(config)
		config.AdminURL = exporter.NormalizeAdminURL(config.AdminURL)
		config.UseNats = config.NatsURL != ""

		event := log.Info()
		event.Str("admin_url", config.AdminURL)
		event.Str("admin_entry", config.AdminEntry)
		event.Int("listen_port", config.ListenPort)
		event.Int("interval_seconds", config.Interval)

		event.Bool("use_nats", config.UseNats)
		if config.UseNats {
			event.Str("nats_url", config.NatsURL)
			event.Str("nats_subject", config.NatsSubject)
		}

		event.Str("node_name", config.NodeName)
		event.Str("instance_id", config.InstanceID)
		event.Msg("configuration_loaded")

		validateExporterConfig(config)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := exporter.Start(ctx, config); err != nil {
			log.Fatal().
				Err(err).
				Msg("error starting exporter")
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&expConfigFile, "config", "", "Optional YAML config file")
	exportCmd.Flags().StringVar(&expAdminURL, "admin-url", "", "Server URL for the RadosGW admin API")
	exportCmd.Flags().StringVar(&expAdminEntry, "admin-entry", "", "Entry point for admin request URLs (default \"admin\")")
	exportCmd.Flags().StringVar(&expAccessKey, "access-key", "", "S3 access key for the RadosGW admin")
	exportCmd.Flags().StringVar(&expSecretKey, "secret-key", "", "S3 secret key for the RadosGW admin")
	exportCmd.Flags().IntVar(&expListenPort, "port", 0, "Port to serve /metrics on (default 9242)")
	exportCmd.Flags().IntVar(&expInterval, "interval", 0, "Interval in seconds between poll cycles (default 60)")
	exportCmd.Flags().StringVar(&expNodeName, "node-name", "", "Name of the node, added to NATS payloads")
	exportCmd.Flags().StringVar(&expInstanceID, "instance-id", "", "Instance ID (generated when empty)")
	exportCmd.Flags().StringVar(&expNatsURL, "nats-url", "", "NATS server URL; enables snapshot publishing when set")
	exportCmd.Flags().StringVar(&expNatsSubject, "nats-subject", "", "NATS subject to publish snapshots (default \"rgw.usage.snapshot\")")
}

func mergeExporterConfigWithEnv(cfg exporter.ExporterConfig) exporter.ExporterConfig {
	cfg.AdminURL = getEnv("ADMIN_URL", cfg.AdminURL)
	cfg.AdminEntry = getEnv("ADMIN_ENTRY", cfg.AdminEntry)
	cfg.AccessKey = getEnv("ACCESS_KEY", cfg.AccessKey)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.ListenPort = getEnvInt("LISTEN_PORT", cfg.ListenPort)
	cfg.Interval = getEnvInt("INTERVAL", cfg.Interval)
	cfg.NodeName = getEnv("NODE_NAME", cfg.NodeName)
	cfg.InstanceID = getEnv("INSTANCE_ID", cfg.InstanceID)
	cfg.NatsURL = getEnv("NATS_URL", cfg.NatsURL)
	cfg.NatsSubject = getEnv("NATS_SUBJECT", cfg.NatsSubject)

	return cfg
}

// applyConfigFileDefaults fills fields the flags left unset from the
// config file; flags and environment keep precedence.
func applyConfigFileDefaults(cfg, file exporter.ExporterConfig) exporter.ExporterConfig {
	if cfg.AdminURL == "" {
		cfg.AdminURL = file.AdminURL
	}
	if cfg.AdminEntry == "" {
		cfg.AdminEntry = file.AdminEntry
	}
	if cfg.AccessKey == "" {
		cfg.AccessKey = file.AccessKey
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = file.SecretKey
	}
	if cfg.ListenPort == 0 {
		cfg.ListenPort = file.ListenPort
	}
	if cfg.Interval == 0 {
		cfg.Interval = file.Interval
	}
	if cfg.NodeName == "" {
		cfg.NodeName = file.NodeName
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = file.InstanceID
	}
	if cfg.NatsURL == "" {
		cfg.NatsURL = file.NatsURL
	}
	if cfg.NatsSubject == "" {
		cfg.NatsSubject = file.NatsSubject
	}
	return cfg
}

func applyDefaults(cfg exporter.ExporterConfig) exporter.ExporterConfig {
	if cfg.AdminEntry == "" {
		cfg.AdminEntry = "admin"
	}
	if cfg.ListenPort == 0 {
		cfg.ListenPort = 9242
	}
	if cfg.Interval == 0 {
		cfg.Interval = 60
	}
	if cfg.NatsSubject == "" {
		cfg.NatsSubject = "rgw.usage.snapshot"
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}
	return cfg
}

func validateExporterConfig(config exporter.ExporterConfig) {
	missingParams := false

	if config.AdminURL == "" {
		fmt.Println("Warning: --admin-url or ADMIN_URL must be set")
		missingParams = true
	}
	if config.AccessKey == "" {
		fmt.Println("Warning: --access-key or ACCESS_KEY must be set")
		missingParams = true
	}
	if config.SecretKey == "" {
		fmt.Println("Warning: --secret-key or SECRET_KEY must be set")
		missingParams = true
	}
	if config.Interval <= 0 {
		fmt.Println("Warning: --interval or INTERVAL must be a positive number of seconds")
		missingParams = true
	}
	if config.ListenPort <= 0 {
		fmt.Println("Warning: --port or LISTEN_PORT must be a positive port number")
		missingParams = true
	}

	if missingParams {
		fmt.Println("One or more required parameters are missing. Please provide them through flags or environment variables.")
		os.Exit(1)
	}
}
