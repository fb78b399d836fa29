package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Layout:  "classic",
		Players: []string{"Player 1", "Player 2"},
		Rules: RulesConfig{
			DiceFaces:      6,
			ExtraTurnOnMax: false,
			StartPosition:  0,
		},
		Storage: StorageConfig{
			DBPath: "~/.ladders/ladders.db",
		},
		Server: ServerConfig{
			SSHAddr: ":2323",
			HostKey: "~/.ladders/ssh_host_ed25519",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
