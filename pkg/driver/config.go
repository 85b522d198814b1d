package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/parser"
)

// ConfigFileName is looked up in the working directory before a run.
const ConfigFileName = "lox.yml"

// Config carries the debug switches and limits threaded through the
// pipeline. There is no ambient global state: every phase receives the
// config it should honor.
type Config struct {
	TokenDebug       bool `yaml:"tok_debug"`
	ParseDebug       bool `yaml:"parse_debug"`
	EnvDebug         bool `yaml:"env_debug"`
	ParserErrorLimit int  `yaml:"parser_error_limit"`
}

func DefaultConfig() Config {
	return Config{ParserErrorLimit: parser.DefaultErrorLimit}
}

// LoadConfig reads lox.yml from dir. A missing file yields the defaults; a
// malformed one is an error.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ParserErrorLimit <= 0 {
		cfg.ParserErrorLimit = parser.DefaultErrorLimit
	}
	return cfg, nil
}

// pragma directives recognized in script source. Only whole-file execution
// honors them; the REPL does not.
var pragmaFlags = []struct {
	name string
	set  func(*Config, bool)
}{
	{"tok_debug", func(c *Config, v bool) { c.TokenDebug = v }},
	{"parse_debug", func(c *Config, v bool) { c.ParseDebug = v }},
	{"env_debug", func(c *Config, v bool) { c.EnvDebug = v }},
}

// ScanPragmas strips "#pragma <flag> on|off" directives from script source
// and folds them into cfg. Directives may appear anywhere; an off directive
// wins over an on directive of the same flag regardless of order.
func ScanPragmas(src string, cfg Config) (string, Config) {
	for _, flag := range pragmaFlags {
		on := "#pragma " + flag.name + " on"
		off := "#pragma " + flag.name + " off"

		if strings.Contains(src, on) {
			flag.set(&cfg, true)
			src = strings.ReplaceAll(src, on, " ")
		}
		if strings.Contains(src, off) {
			flag.set(&cfg, false)
			src = strings.ReplaceAll(src, off, " ")
		}
	}
	return src, cfg
}
