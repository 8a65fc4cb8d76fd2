package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/langextract/internal/api"
)

// DefaultAPIURL is the backend used when none is configured.
const DefaultAPIURL = api.DefaultBaseURL

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// Entry is one configuration key with its default and description.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default value.
// Keys are dotted paths into Config.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "api_url",
			Value:       d.APIURL,
			Description: "Extraction backend base URL (env: LANGEXTRACT_API_URL)",
		},
		{
			Key:         "request_timeout",
			Value:       d.RequestTimeout,
			Description: "Timeout for each backend call, 0 for none",
		},
		{
			Key:         "session_ttl",
			Value:       d.SessionTTL,
			Description: "How long an idle browser session is kept",
		},
		{
			Key:         "max_sessions",
			Value:       d.MaxSessions,
			Description: "Maximum live browser sessions, 0 for no limit",
		},
		{
			Key:         "presets_file",
			Value:       d.PresetsFile,
			Description: "YAML file with additional schema presets",
		},
		{
			Key:         "server.host",
			Value:       d.Server.Host,
			Description: "Host the web server binds to",
		},
		{
			Key:         "server.port",
			Value:       d.Server.Port,
			Description: "Port the web server listens on",
		},
		{
			Key:         "log.level",
			Value:       d.Log.Level,
			Description: "Log level: debug, info, warn or error",
		},
		{
			Key:         "log.format",
			Value:       d.Log.Format,
			Description: "Log format: text or json",
		},
	}
}

// GetDefault returns the default entry for a config key.
func GetDefault(key string) (*Entry, error) {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("%w for key %q", ErrNoDefault, key)
}

// defaultsDocument renders the default entries as an ordered YAML mapping,
// nesting dotted keys. Durations are written in their string form.
func defaultsDocument(entries []Entry) yaml.MapSlice {
	var root yaml.MapSlice
	for _, e := range entries {
		value := e.Value
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		root = setPath(root, strings.Split(e.Key, "."), value)
	}
	return root
}

func setPath(m yaml.MapSlice, path []string, value any) yaml.MapSlice {
	if len(path) == 1 {
		return append(m, yaml.MapItem{Key: path[0], Value: value})
	}
	for i, item := range m {
		if item.Key == path[0] {
			child, _ := item.Value.(yaml.MapSlice)
			m[i].Value = setPath(child, path[1:], value)
			return m
		}
	}
	return append(m, yaml.MapItem{Key: path[0], Value: setPath(nil, path[1:], value)})
}
