package dupescan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// Config holds user defaults loaded from an INI config file. Command line
// flags take precedence over config values, which take precedence over the
// built-in defaults.
//
// Recognised sections and keys:
//
//	[digest]  fast     = false
//	[scan]    max_size = 0        ; human size ("512M"); 0 means unlimited
//	[scan]    exclude  =          ; comma-separated doublestar globs
//	[verbose] level    = 0
//	[verbose] debug    =          ; comma-separated debug flags
type Config struct {
	ini *ini.File
}

// DefaultConfigPath returns the default config location,
// $HOME/.dupescan/config.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".dupescan", "config"), nil
}

// LoadConfig reads the config file at path. A missing file is not an
// error; it yields the built-in defaults.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{ini: ini.Empty()}, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return &Config{ini: f}, nil
}

// Fast returns the configured default for fast digesting.
func (c *Config) Fast() bool {
	return c.ini.Section("digest").Key("fast").MustBool(false)
}

// MaxSize returns the configured scan size bound in bytes, or 0 when no
// bound is configured.
func (c *Config) MaxSize() (uint64, error) {
	raw := c.ini.Section("scan").Key("max_size").String()
	if raw == "" || raw == "0" {
		return 0, nil
	}
	size, err := ParseHumanSize(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid max_size in config: %w", err)
	}
	return size, nil
}

// Exclude returns the configured default exclude patterns.
func (c *Config) Exclude() []string {
	raw := c.ini.Section("scan").Key("exclude").String()
	if raw == "" {
		return nil
	}

	var patterns []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// VerboseLevel returns the configured default verbose level.
func (c *Config) VerboseLevel() int {
	return c.ini.Section("verbose").Key("level").MustInt(0)
}

// DebugFlags returns the configured default debug flags string.
func (c *Config) DebugFlags() string {
	return c.ini.Section("verbose").Key("debug").String()
}

// ParseHumanSize parses sizes like "512", "64K", "2M" or "1GB" into bytes.
// Suffixes are powers of 1024 and case-insensitive.
func ParseHumanSize(sizeStr string) (uint64, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	numPart := sizeStr
	suffix := ""
	for i, char := range sizeStr {
		if char < '0' || char > '9' {
			numPart = sizeStr[:i]
			suffix = sizeStr[i:]
			break
		}
	}
	if numPart == "" {
		return 0, fmt.Errorf("no numeric part in size string: %s", sizeStr)
	}

	num, err := strconv.ParseUint(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size string %s: %w", sizeStr, err)
	}

	var multiplier uint64
	switch suffix {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = sizeKB
	case "M", "MB":
		multiplier = sizeMB
	case "G", "GB":
		multiplier = sizeGB
	default:
		return 0, fmt.Errorf("unknown size suffix in %s", sizeStr)
	}
	return num * multiplier, nil
}
