// Package judge runs games between bot subprocesses, scores matchups
// and optionally records every protocol exchange.
package judge

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlayerConfig describes how to start one player process.
type PlayerConfig struct {
	Nick string   `json:"nick"`
	Cmd  []string `json:"cmd"`
}

// LoadPlayerConfig reads a player config JSON file.
func LoadPlayerConfig(path string) (PlayerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlayerConfig{}, fmt.Errorf("read config file %q: %w", path, err)
	}
	var config PlayerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return PlayerConfig{}, fmt.Errorf("parse config file %q: %w", path, err)
	}
	if len(config.Cmd) == 0 {
		return PlayerConfig{}, fmt.Errorf("config file %q: 'cmd' field cannot be empty", path)
	}
	if config.Nick == "" {
		config.Nick = config.Cmd[0]
	}
	return config, nil
}
