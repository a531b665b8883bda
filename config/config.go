package config

import (
	"os"

	postgres_wrapper "github.com/joripage/lob-engine/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/lob-engine/pkg/infra/redis"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type KafkaConfig struct {
	Brokers         []string `yaml:"brokers"`
	TradeTopic      string   `yaml:"trade_topic"`
	OrderEventTopic string   `yaml:"order_event_topic"`
	GroupID         string   `yaml:"group_id"`
}

type EngineConfig struct {
	DefaultTickSize string            `yaml:"default_tick_size"`
	TickSizes       map[string]string `yaml:"tick_sizes"`
	QueueSize       int               `yaml:"queue_size"`
	SnapshotSymbols []string          `yaml:"snapshot_symbols"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	EngineDB    *postgres_wrapper.PostgresConfig `yaml:"engine_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka       *KafkaConfig                     `yaml:"kafka"`
	Engine      *EngineConfig                    `yaml:"engine"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
