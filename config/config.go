// Package config carries the tool settings. Values resolve in three layers:
// built-in defaults, then an optional YAML file, then environment variables.
// Command-line flags sit on top of all three and are handled by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type TranspileConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

type EngineConfig struct {
	DSN string `yaml:"dsn"`
}

type OutputConfig struct {
	Extended bool `yaml:"extended"`
	ShowAST  bool `yaml:"show_ast"`
}

type Config struct {
	// QueriesDir is the directory holding the per-benchmark query folders.
	// Empty means next to the executable.
	QueriesDir string          `yaml:"queries_dir"`
	Transpile  TranspileConfig `yaml:"transpile"`
	Engine     EngineConfig    `yaml:"engine"`
	Output     OutputConfig    `yaml:"output"`
}

func Default() Config {
	return Config{
		Transpile: TranspileConfig{Source: "duckdb", Target: "sqlite"},
		Engine:    EngineConfig{DSN: ":memory:"},
	}
}

// Load reads a YAML file over the defaults. Fields the file does not mention
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %v: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config file %v: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	c.QueriesDir = StringEnv("QUERIES_DIR", c.QueriesDir)
	c.Transpile.Source = StringEnv("SOURCE_DIALECT", c.Transpile.Source)
	c.Transpile.Target = StringEnv("TARGET_DIALECT", c.Transpile.Target)
	c.Engine.DSN = StringEnv("ENGINE_DSN", c.Engine.DSN)
	c.Output.Extended = BoolEnv("EXPLAIN_EXTENDED", c.Output.Extended)
	c.Output.ShowAST = BoolEnv("EXPLAIN_SHOW_AST", c.Output.ShowAST)
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func BoolEnv(key string, def bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
