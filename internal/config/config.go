// ABOUTME: Aria configuration management with backend selection.
// ABOUTME: Handles settings, chat endpoint, and storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/aria/internal/charm"
	"github.com/harperreed/aria/internal/storage"
)

// Defaults for the chat companion endpoint. Any OpenAI-compatible server
// works; the default targets a local Ollama instance.
const (
	DefaultChatBaseURL = "http://localhost:11434/v1"
	DefaultChatModel   = "llama3.2"
)

// Config stores aria configuration.
type Config struct {
	// Backend selects the storage backend: "json" (default) or "charm".
	// JSON keeps one file per collection under DataDir. Charm syncs the
	// collections through Charm Cloud KV.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for the JSON backend's files.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/aria.
	DataDir string `json:"data_dir,omitempty"`

	// ChatBaseURL is the OpenAI-compatible endpoint for the companion chat.
	ChatBaseURL string `json:"chat_base_url,omitempty"`

	// ChatModel is the model name passed to the chat endpoint.
	ChatModel string `json:"chat_model,omitempty"`

	// ChatAPIKey authenticates against the chat endpoint. Optional for
	// local servers.
	ChatAPIKey string `json:"chat_api_key,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "json".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "json"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetChatBaseURL returns the chat endpoint, defaulting to local Ollama.
func (c *Config) GetChatBaseURL() string {
	if c.ChatBaseURL == "" {
		return DefaultChatBaseURL
	}
	return c.ChatBaseURL
}

// GetChatModel returns the chat model name.
func (c *Config) GetChatModel() string {
	if c.ChatModel == "" {
		return DefaultChatModel
	}
	return c.ChatModel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case "json":
		return storage.NewJSONStore(c.GetDataDir())
	case "charm":
		return charm.GetClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "aria", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
