// Package config provides YAML-based game configuration loading with
// environment overrides for the ladders CLI and servers.
package config

import "time"

// GameConfig contains all configuration for a game and the processes around it.
type GameConfig struct {
	Layout  string        `yaml:"layout" env:"LADDERS_LAYOUT"`
	Players []string      `yaml:"players" env:"LADDERS_PLAYERS" envSeparator:","`
	Rules   RulesConfig   `yaml:"rules"`
	Board   *BoardConfig  `yaml:"board,omitempty"` // Overrides Layout when set
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// RulesConfig defines the optional rule variants.
type RulesConfig struct {
	DiceFaces      int  `yaml:"dice_faces" env:"LADDERS_FACES"`
	ExtraTurnOnMax bool `yaml:"extra_turn_on_max" env:"LADDERS_EXTRA_TURN"`
	StartPosition  int  `yaml:"start_position" env:"LADDERS_START"`
}

// BoardConfig defines a custom board.
type BoardConfig struct {
	Size    int         `yaml:"size"`
	Snakes  map[int]int `yaml:"snakes"`
	Ladders map[int]int `yaml:"ladders"`
}

// StorageConfig defines where saves and results are kept.
type StorageConfig struct {
	DBPath        string        `yaml:"db" env:"LADDERS_DB"`
	RedisAddr     string        `yaml:"redis_addr" env:"LADDERS_REDIS_ADDR"` // Saves go to redis when set
	RedisPassword string        `yaml:"redis_password" env:"LADDERS_REDIS_PASSWORD"`
	RedisPrefix   string        `yaml:"redis_prefix" env:"LADDERS_REDIS_PREFIX"` // Empty keeps the store default
	RedisTTL      time.Duration `yaml:"redis_ttl" env:"LADDERS_REDIS_TTL"`       // Zero keeps saves forever
}

// ServerConfig defines the SSH and metrics listeners for `ladders serve`.
type ServerConfig struct {
	SSHAddr     string `yaml:"ssh_addr" env:"LADDERS_SSH_ADDR"`
	HostKey     string `yaml:"host_key" env:"LADDERS_HOST_KEY"`
	MetricsAddr string `yaml:"metrics_addr" env:"LADDERS_METRICS_ADDR"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LADDERS_LOG_LEVEL"` // debug, info, warn, error
}
