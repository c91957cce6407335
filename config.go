package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LogConfig mirrors the Log section of the node config file. It is carried
// through load/save untouched by the node operations.
type LogConfig struct {
	Level      string `json:"Level"`
	AccessPath string `json:"AccessPath"`
	ErrorPath  string `json:"ErrorPath"`
}

// Node is one proxy node entry in the config file.
type Node struct {
	NodeID  int    `json:"NodeID"`
	ApiHost string `json:"ApiHost"`
	ApiKey  string `json:"ApiKey"`
	Timeout int    `json:"Timeout"`
}

// Config is the full configuration document. Node order is significant:
// display index = position + 1.
type Config struct {
	Log   LogConfig `json:"Log"`
	Nodes []Node    `json:"Nodes"`
}

func defaultConfig() *Config {
	return &Config{
		Log:   LogConfig{Level: "warning"},
		Nodes: []Node{},
	}
}

// Store reads and writes the configuration document at a fixed path. The
// file is the sole source of truth; callers re-load before every operation.
type Store struct {
	Path string
}

// Load reads the document from disk. A missing file yields the default
// document rather than an error.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}
	if cfg.Nodes == nil {
		cfg.Nodes = []Node{}
	}
	return cfg, nil
}

// Save writes the document atomically: marshal, write to a temp file next
// to the target, then rename over it.
func (s *Store) Save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %v", err)
		}
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %v", err)
	}
	return nil
}
