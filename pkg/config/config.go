package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Named types to allow reuse and clearer code
type KinesisConfig struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // optional, for local stacks
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	SchemaRegistry string   `yaml:"schemaRegistry"`
	UseAvro        bool     `yaml:"useAvro"`
}

type AppConfig struct {
	Backend string        `yaml:"backend"` // "kinesis" or "kafka"
	Kinesis KinesisConfig `yaml:"kinesis"`
	Kafka   KafkaConfig   `yaml:"kafka"`

	Emitter struct {
		PartitionKey string        `yaml:"partitionKey"`
		PollInterval time.Duration `yaml:"pollInterval"`
	} `yaml:"emitter"`
}

// Default returns an AppConfig with the defaults every invocation starts from.
// CLI flags and an optional config file are layered on top by the caller.
func Default() AppConfig {
	cfg := AppConfig{
		Backend: "kinesis",
		Kinesis: KinesisConfig{
			Region: "us-east-1",
		},
	}
	cfg.Emitter.PartitionKey = "123"
	cfg.Emitter.PollInterval = 3 * time.Second
	return cfg
}

// Load reads and parses a YAML config file into an AppConfig struct.
// It will terminate the program if the file is not found or invalid.
func Load(path string) AppConfig {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("Config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Error parsing config file: %v", err)
	}

	return cfg
}
