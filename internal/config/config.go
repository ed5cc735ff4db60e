package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
)

const defaultConfigFile = "config/config.yaml"

type Config struct {
	ListenAddr  string      `yaml:"listen_addr"`
	Environment string      `yaml:"environment"`
	LogLevel    string      `yaml:"log_level"`
	Notifier    string      `yaml:"notifier"`
	Kafka       KafkaConfig `yaml:"kafka"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Load builds the config in three layers: defaults, then the optional yaml
// file, then environment variables (a .env file is read first if present).
func Load() (Config, error) {
	// Missing .env is fine, env vars may come from the environment itself.
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:  ":8080",
		Environment: "local",
		LogLevel:    "info",
		Notifier:    NotifierLog,
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "transfer_completed",
		},
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		path = defaultConfigFile
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ENVIRONMENT")); v != "" {
		cfg.Environment = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("NOTIFIER")); v != "" {
		cfg.Notifier = v
	}
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("KAFKA_TOPIC")); v != "" {
		cfg.Kafka.Topic = v
	}

	if cfg.Notifier != NotifierLog && cfg.Notifier != NotifierKafka {
		return Config{}, fmt.Errorf("invalid notifier %q: must be %q or %q",
			cfg.Notifier, NotifierLog, NotifierKafka)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
