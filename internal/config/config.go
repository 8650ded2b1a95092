package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendPostgres = "postgres"
	BackendSnapshot = "snapshot"
)

// Config holds all runtime settings, loaded from a YAML file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// StorageConfig selects the persistence backend. The snapshot backend keeps
// the dataset in memory and rewrites SnapshotPath after every mutation.
type StorageConfig struct {
	Backend      string `yaml:"backend"`
	SnapshotPath string `yaml:"snapshot_path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendPostgres
	}
	if cfg.Storage.Backend != BackendPostgres && cfg.Storage.Backend != BackendSnapshot {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == BackendSnapshot && cfg.Storage.SnapshotPath == "" {
		cfg.Storage.SnapshotPath = "tpv.json"
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns the AMQP connection URL.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
