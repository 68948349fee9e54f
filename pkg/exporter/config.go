// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type ExporterConfig struct {
	AdminURL    string `mapstructure:"admin_url"`
	AdminEntry  string `mapstructure:"admin_entry"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	ListenPort  int    `mapstructure:"listen_port"`
	Interval    int    `mapstructure:"interval"` // in seconds
	NodeName    string `mapstructure:"node_name"`
	InstanceID  string `mapstructure:"instance_id"`
	NatsURL     string `mapstructure:"nats_url"`
	NatsSubject string `mapstructure:"nats_subject"`
	UseNats     bool   `mapstructure:"-"` // derived from NatsURL
}

// LoadConfigFile reads an exporter config from a YAML file. The file is
// watched afterwards; changes are logged and take effect on restart.
func LoadConfigFile(path string) (*ExporterConfig, error) {
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config ExporterConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config file into struct: %w", err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Warn().
			Str("file", e.Name).
			Msg("config file changed; restart to apply")
	})
	viper.WatchConfig()

	return &config, nil
}

// NormalizeAdminURL applies the default http scheme and strips trailing
// slashes so the client can join request paths predictably.
func NormalizeAdminURL(raw string) string {
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}
