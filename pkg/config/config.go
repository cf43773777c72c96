// Package config contains the client configuration as read from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the version of the tool, set at build time.
var Version string

// DefaultDiscoveryAccount is the account whose metadata carries the published
// node list used when no other account is configured.
const DefaultDiscoveryAccount = "nectarflower"

// Config is a top level struct representing the client config.
type Config struct {
	// Endpoints is an ordered list of RPC nodes to use before (or instead of)
	// node discovery. May be empty, the client has a built-in default.
	Endpoints []string `yaml:"Endpoints"`
	// DiscoveryAccount is the account whose JSON metadata is used as the node
	// list source.
	DiscoveryAccount string        `yaml:"DiscoveryAccount"`
	DialTimeout      time.Duration `yaml:"DialTimeout"`
	RequestTimeout   time.Duration `yaml:"RequestTimeout"`
}

// LoadFile loads config from the provided path.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Config{
		DiscoveryAccount: DefaultDiscoveryAccount,
	}
	err = yaml.Unmarshal(configData, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	return config, nil
}
