// Package config loads and validates the easel configuration file.
//
// The file is found by walking up from the working directory looking for
// easel.yml, easel.yaml or easel.toml; the decoder is chosen by extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/easeltools/easel/errors"
)

//go:generate go run ../tools/schema-generator/

var configNames = []string{"easel.yml", "easel.yaml", "easel.toml"}

// HostConfig describes the host application the panels talk to.
type HostConfig struct {
	URL        string `json:"url" yaml:"url" toml:"url" jsonschema:"description=Base URL of the host application (e.g. http://127.0.0.1:8188)"`
	EventsPath string `json:"events_path,omitempty" yaml:"events_path,omitempty" toml:"events_path,omitempty" jsonschema:"description=Websocket path for host events (default /ws)"`
	LogFile    string `json:"log_file,omitempty" yaml:"log_file,omitempty" toml:"log_file,omitempty" jsonschema:"description=Path to the host application's log file for the logs command"`
}

// TUIConfig holds appearance settings shared by all panels.
type TUIConfig struct {
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty" jsonschema:"description=Color theme name"`
	Icons string `json:"icons,omitempty" yaml:"icons,omitempty" toml:"icons,omitempty" jsonschema:"description=Icon set: nerd (default) or ascii"`
}

// BrowserConfig holds model-browser panel defaults.
type BrowserConfig struct {
	Sort            string `json:"sort,omitempty" yaml:"sort,omitempty" toml:"sort,omitempty" jsonschema:"description=Default sort: name|lastused|size|type with optional -desc suffix"`
	View            string `json:"view,omitempty" yaml:"view,omitempty" toml:"view,omitempty" jsonschema:"description=Default view mode: flat or tree"`
	DefaultExpanded bool   `json:"default_expanded,omitempty" yaml:"default_expanded,omitempty" toml:"default_expanded,omitempty" jsonschema:"description=Expand all folders by default in tree view"`
}

// GalleryConfig holds gallery panel defaults.
type GalleryConfig struct {
	ThumbnailSize int `json:"thumbnail_size,omitempty" yaml:"thumbnail_size,omitempty" toml:"thumbnail_size,omitempty" jsonschema:"description=Thumbnail cell size in terminal columns"`
}

// EditorConfig holds editor panel limits.
type EditorConfig struct {
	MaxFileSize int64 `json:"max_file_size,omitempty" yaml:"max_file_size,omitempty" toml:"max_file_size,omitempty" jsonschema:"description=Largest file the editor will open or save, in bytes"`
}

// ChatConfig holds chat sidebar defaults.
type ChatConfig struct {
	Model      string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty" jsonschema:"description=Model identifier sent with completion requests"`
	MaxHistory int    `json:"max_history,omitempty" yaml:"max_history,omitempty" toml:"max_history,omitempty" jsonschema:"description=Number of persisted conversation turns (default 100)"`
}

// Config is the root easel configuration.
type Config struct {
	Version        string         `json:"version" yaml:"version" toml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
	Host           HostConfig     `json:"host" yaml:"host" toml:"host" jsonschema:"description=Host application endpoints"`
	ModelRoots     []string       `json:"model_roots,omitempty" yaml:"model_roots,omitempty" toml:"model_roots,omitempty" jsonschema:"description=Local directories scanned for model files"`
	IgnorePatterns []string       `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns,omitempty" jsonschema:"description=dockerignore-style patterns excluded from scanning"`
	TUI            *TUIConfig     `json:"tui,omitempty" yaml:"tui,omitempty" toml:"tui,omitempty" jsonschema:"description=Appearance settings"`
	Browser        *BrowserConfig `json:"browser,omitempty" yaml:"browser,omitempty" toml:"browser,omitempty" jsonschema:"description=Model browser defaults"`
	Gallery        *GalleryConfig `json:"gallery,omitempty" yaml:"gallery,omitempty" toml:"gallery,omitempty" jsonschema:"description=Gallery defaults"`
	Editor         *EditorConfig  `json:"editor,omitempty" yaml:"editor,omitempty" toml:"editor,omitempty" jsonschema:"description=Editor limits"`
	Chat           *ChatConfig    `json:"chat,omitempty" yaml:"chat,omitempty" toml:"chat,omitempty" jsonschema:"description=Chat sidebar defaults"`

	// Extensions carries tool-specific blocks (logging, keybindings) that
	// are decoded on demand with UnmarshalExtension.
	Extensions map[string]interface{} `json:"-" yaml:",inline" toml:"-" jsonschema:"-"`

	// Path is where the config was loaded from. Empty for defaults.
	Path string `json:"-" yaml:"-" toml:"-" jsonschema:"-"`
}

// Default returns the built-in configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Host: HostConfig{
			URL:        "http://127.0.0.1:8188",
			EventsPath: "/ws",
		},
	}
}

// Load reads and decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "read config file")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "parse toml config")
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "parse yaml config")
		}
	}

	cfg.Path = path
	return &cfg, nil
}

// LoadDefault finds the config file by upward search from the working
// directory and loads it. Missing file is not an error: the built-in
// defaults are returned instead.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, ok := FindConfigFile(cwd)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// FindConfigFile walks up from dir looking for a config file.
func FindConfigFile(dir string) (string, bool) {
	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// UnmarshalExtension decodes a named extension block into out. Unknown
// extensions yield no error and leave out untouched.
func (c *Config) UnmarshalExtension(name string, out interface{}) error {
	if c.Extensions == nil {
		return nil
	}
	raw, ok := c.Extensions[name]
	if !ok {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "yaml",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode %q extension: %w", name, err)
	}
	return nil
}
