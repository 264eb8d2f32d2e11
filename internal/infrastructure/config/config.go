package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"flowtask/pkg/filesystem"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/flowtask"
	defaultServerBaseURL  = "http://localhost:8000/api/v1"
	defaultTimeoutSeconds = 10
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Theme       ThemeConfig       `yaml:"theme"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// ServerConfig holds backend connection configuration
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ThemeConfig holds the persisted theme preference. This is the only durable
// client-local state besides the config file itself.
type ThemeConfig struct {
	Preference string `yaml:"preference"` // light, dark, or system
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Header       TextStyle      `yaml:"header"`
	Stats        TextStyle      `yaml:"stats"`
	Task         TextStyle      `yaml:"task"`
	SelectedTask TextStyle      `yaml:"selected_task"`
	DoneTask     TextStyle      `yaml:"done_task"`
	Tag          TextStyle      `yaml:"tag"`
	Badge        TextStyle      `yaml:"badge"`
	Error        TextStyle      `yaml:"error"`
	Help         TextStyle      `yaml:"help"`
	Form         FormStyle      `yaml:"form"`
	Priority     PriorityColors `yaml:"priority"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
}

// FormStyle represents form border styling
type FormStyle struct {
	BorderStyle string `yaml:"border_style"`
	BorderColor string `yaml:"border_color"`
}

// PriorityColors holds colors for different priority levels
type PriorityColors struct {
	High   string `yaml:"high"`
	Medium string `yaml:"medium"`
	Low    string `yaml:"low"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up     []string `yaml:"up"`
	Down   []string `yaml:"down"`
	Toggle []string `yaml:"toggle"`
	Add    []string `yaml:"add"`
	Edit   []string `yaml:"edit"`
	Delete []string `yaml:"delete"`
	Filter []string `yaml:"filter"`
	Clear  []string `yaml:"clear"`
	Quit   []string `yaml:"quit"`
}

// Timeout returns the server request timeout.
func (c *Config) Timeout() time.Duration {
	seconds := c.Server.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, defaultConfigDirName)
	configPath := filepath.Join(configDir, defaultConfigFileName)

	return &Loader{
		configPath: configPath,
	}, nil
}

// NewLoaderAt creates a loader for an explicit config path.
func NewLoaderAt(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load loads the configuration, creating defaults if it doesn't exist
func (l *Loader) Load() (*Config, error) {
	exists, err := filesystem.Exists(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		return l.createDefaultConfig()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Save persists the configuration to disk. The write is atomic so a
// concurrent config watcher never reads a half-written file.
func (l *Loader) Save(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := filesystem.SafeWrite(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadThemePreference reads the persisted theme preference key.
func (l *Loader) LoadThemePreference() (string, error) {
	config, err := l.Load()
	if err != nil {
		return "", err
	}
	return config.Theme.Preference, nil
}

// SaveThemePreference writes the theme preference key, preserving the rest
// of the configuration.
func (l *Loader) SaveThemePreference(preference string) error {
	config, err := l.Load()
	if err != nil {
		return err
	}
	config.Theme.Preference = preference
	return l.Save(config)
}

// createDefaultConfig creates and saves a default configuration
func (l *Loader) createDefaultConfig() (*Config, error) {
	config := DefaultConfig()

	if err := l.Save(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        defaultServerBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Theme: ThemeConfig{
			Preference: "system",
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Header: TextStyle{
					Foreground: "99",
					Bold:       true,
				},
				Stats: TextStyle{
					Foreground:        "245",
					PaddingHorizontal: 1,
				},
				Task: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedTask: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				DoneTask: TextStyle{
					Foreground:        "243",
					Italic:            true,
					PaddingHorizontal: 1,
				},
				Tag: TextStyle{
					Foreground: "#A8DADC",
				},
				Badge: TextStyle{
					Foreground: "230",
					Background: "161",
					Bold:       true,
				},
				Error: TextStyle{
					Foreground: "#FF6B6B",
					Bold:       true,
				},
				Help: TextStyle{
					Foreground:      "241",
					PaddingVertical: 1,
				},
				Form: FormStyle{
					BorderStyle: "rounded",
					BorderColor: "62",
				},
				Priority: PriorityColors{
					High:   "#FF6B6B",
					Medium: "#FFE66D",
					Low:    "#95E1D3",
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:     []string{"up", "k"},
			Down:   []string{"down", "j"},
			Toggle: []string{" ", "x"},
			Add:    []string{"a"},
			Edit:   []string{"e"},
			Delete: []string{"d"},
			Filter: []string{"/"},
			Clear:  []string{"c"},
			Quit:   []string{"q", "ctrl+c"},
		},
	}
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}
