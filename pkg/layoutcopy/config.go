package layoutcopy

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config contains all configuration options for the layout transfer engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `toml:"log_level"`
	// TempDir is where step-scoped temporary files (style snapshots, pre-patch
	// saves) are created. Empty means the system temp directory.
	TempDir string `toml:"temp_dir"`
	// ShowHostUI makes the document host visible while it works
	ShowHostUI bool `toml:"show_host_ui"`
	// SectionMapping is the default section mapping mode (index, broadcast)
	SectionMapping string `toml:"section_mapping"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	// Initialize global config from environment on first use
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		TempDir:        "",
		ShowHostUI:     false,
		SectionMapping: "broadcast",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// LAYOUTCOPY_LOG_LEVEL
	if val := os.Getenv("LAYOUTCOPY_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// LAYOUTCOPY_TEMP_DIR
	if val := os.Getenv("LAYOUTCOPY_TEMP_DIR"); val != "" {
		config.TempDir = val
	}

	// LAYOUTCOPY_SHOW_HOST_UI
	if val := os.Getenv("LAYOUTCOPY_SHOW_HOST_UI"); val != "" {
		config.ShowHostUI = parseBool(val)
	}

	// LAYOUTCOPY_SECTION_MAPPING
	if val := os.Getenv("LAYOUTCOPY_SECTION_MAPPING"); val != "" {
		config.SectionMapping = val
	}

	return config
}

// LoadConfigFile loads configuration from a TOML file, layered over the
// defaults. A missing file is not an error; environment variables still
// override whatever the file sets.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return applyEnvironment(config), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, NewDocumentError("parse", path, err)
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.SectionMapping == "" {
		config.SectionMapping = "broadcast"
	}

	return applyEnvironment(config), nil
}

// applyEnvironment overlays environment variables on top of config
func applyEnvironment(config *Config) *Config {
	if val := os.Getenv("LAYOUTCOPY_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}
	if val := os.Getenv("LAYOUTCOPY_TEMP_DIR"); val != "" {
		config.TempDir = val
	}
	if val := os.Getenv("LAYOUTCOPY_SHOW_HOST_UI"); val != "" {
		config.ShowHostUI = parseBool(val)
	}
	if val := os.Getenv("LAYOUTCOPY_SECTION_MAPPING"); val != "" {
		config.SectionMapping = val
	}
	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.TempDir != "" {
		if info, err := os.Stat(c.TempDir); err != nil || !info.IsDir() {
			return errors.New("temp dir is not a directory: " + c.TempDir)
		}
	}

	if _, err := ParseSectionMapping(c.SectionMapping); err != nil {
		return err
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// tempDir returns the directory for step-scoped temporary files
func tempDir() string {
	if dir := GetGlobalConfig().TempDir; dir != "" {
		return dir
	}
	return os.TempDir()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
