package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional on-disk config a -config flag points at.
// DictDir also has a flag (-dict) and an environment variable
// (MURASAKI_DICT_DIR); flags win, then this file, then the environment,
// then the built-in default. Verbose has a flag (-v) only, and either
// source can turn it on.
type fileConfig struct {
	DictDir string `yaml:"dict_dir"`
	Verbose bool   `yaml:"verbose"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("murasaki: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("murasaki: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
