package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	fileName = "blockfall.yaml"

	// SourceEmbedded is reported by Locate when no file on disk is found.
	SourceEmbedded = "embedded"
)

// LoadBlockfall loads the game configuration.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml ->
// ./configs/blockfall.yaml -> embedded default -> hardcoded default.
// Only an explicit customPath that cannot be read or parsed is an error;
// broken files further down the search path are skipped.
func LoadBlockfall(customPath string) (BlockfallConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlockfallConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultBlockfallConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultBlockfallYAML)
	if err != nil {
		return DefaultBlockfallConfig(), nil
	}
	return cfg, nil
}

// Locate returns the file LoadBlockfall would read, or SourceEmbedded.
func Locate(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if _, err := parse(data); err == nil {
			return path
		}
	}
	return SourceEmbedded
}

// parse decodes data over the hardcoded defaults so omitted keys keep
// their default values.
func parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty document is a valid "all defaults" file.
		if errors.Is(err, io.EOF) {
			return DefaultBlockfallConfig(), nil
		}
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg BlockfallConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return buf.Bytes(), nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(fileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}
