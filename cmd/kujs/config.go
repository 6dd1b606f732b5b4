package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional --config document. A non-empty loglevel
// replaces the --loglevel flag's value, logtags sets the log tag filter,
// and fuzz_search_paths adds output directories for fuzz-corpus. Grounded
// on funvibe-funxy's internal/ext/config.go (a flat yaml.v3-tagged struct
// loaded with yaml.Unmarshal, no defaulting logic of its own — an empty
// loglevel leaves the flag's value in place).
type fileConfig struct {
	LogLevel      string   `yaml:"loglevel,omitempty"`
	LogTags       []string `yaml:"logtags,omitempty"`
	FuzzSearchDir []string `yaml:"fuzz_search_paths,omitempty"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
