package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/langextract/internal/home"
)

// EnvPrefix prefixes every environment variable read by the config.
const EnvPrefix = "LANGEXTRACT"

// FlagBinding maps a command-line flag onto a config key. A flag that was
// set on the command line wins over env, file and default.
type FlagBinding struct {
	Key  string
	Flag *pflag.Flag
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
// cfgFile may be empty, in which case ./config.yaml and
// ~/.langextract/config.yaml are tried.
func NewManager(cfgFile string, flags ...FlagBinding) (*Manager, error) {
	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile, flags); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults, env, flags and config file.
func (cm *Manager) initViper(cfgFile string, flags []FlagBinding) error {
	for _, e := range DefaultEntries() {
		cm.v.SetDefault(e.Key, e.Value)
	}

	// LANGEXTRACT_API_URL, LANGEXTRACT_SERVER_PORT, ...
	cm.v.SetEnvPrefix(EnvPrefix)
	cm.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cm.v.AutomaticEnv()

	for _, b := range flags {
		if b.Flag == nil {
			continue
		}
		if err := cm.v.BindPFlag(b.Key, b.Flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.Flag.Name, err)
		}
	}

	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("config")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		cm.v.AddConfigPath(filepath.Join("$HOME", home.DefaultDirName))
	}

	// Config file is optional
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a validated Config.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile returns the config file in use, or "" when running on
// defaults and environment only.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// Entries returns every known key with its effective and default value.
func (cm *Manager) Entries() []Entry {
	entries := DefaultEntries()
	for i, e := range entries {
		entries[i].Default = e.Value
		entries[i].Value = cm.v.Get(e.Key)
	}
	return entries
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. A reload that fails
// to parse or validate is reported to onError and the previous config stays.
func (cm *Manager) WatchConfig(onError func(error)) {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// WriteDefault writes the default configuration to the specified path.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	entries := DefaultEntries()
	data, err := yaml.Marshal(defaultsDocument(entries))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var header bytes.Buffer
	header.WriteString("# langextract configuration\n")
	header.WriteString("# Every key can also be set as LANGEXTRACT_<KEY> with dots as underscores.\n#\n")
	for _, e := range entries {
		fmt.Fprintf(&header, "#   %-16s %s\n", e.Key, e.Description)
	}
	header.WriteString("\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, append(header.Bytes(), data...), 0o644)
}
