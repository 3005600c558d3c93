package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the asset roots and debug logging
const (
	EnvImagesPath = "IMAGES_PATH"
	EnvFontsPath  = "FONTS_PATH"
	EnvLogDebug   = "PUPPET_LOG_DEBUG"
)

// Loader loads renderer configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
	getenv   func(string) string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
		getenv:   os.Getenv,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
		getenv:   os.Getenv,
	}
}

// WithEnv replaces the environment lookup (for tests)
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// LoadRenderer loads the named file over the defaults. The format is chosen
// by extension: .yaml/.yml are YAML, everything else JSON.
func (l *Loader) LoadRenderer(name string) (*RendererConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg := Default()
	switch path.Ext(name) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	l.applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// LoadDefault returns the defaults with environment overrides applied
func (l *Loader) LoadDefault() *RendererConfig {
	cfg := Default()
	l.applyEnv(cfg)
	return cfg
}

// LoadAll loads renderer.json or renderer.yaml, whichever exists first, and
// falls back to the defaults when neither does.
func (l *Loader) LoadAll() (*RendererConfig, error) {
	for _, name := range []string{"renderer.json", "renderer.yaml", "renderer.yml"} {
		cfg, err := l.LoadRenderer(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return l.LoadDefault(), nil
}

func (l *Loader) applyEnv(cfg *RendererConfig) {
	if v := l.getenv(EnvImagesPath); v != "" {
		cfg.Assets.ImagesRoot = v
	}
	if v := l.getenv(EnvFontsPath); v != "" {
		cfg.Assets.FontsRoot = v
	}
	if v := l.getenv(EnvLogDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Debug = debug
		}
	}
}

// Validate checks values the renderer cannot start with
func (c *RendererConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("framerate must be positive, got %d", c.Display.Framerate)
	}
	if c.Transport.QueueSize < 0 {
		return fmt.Errorf("queue size must not be negative, got %d", c.Transport.QueueSize)
	}
	if c.Transport.MaxMessageBytes <= 0 {
		return fmt.Errorf("max message bytes must be positive, got %d", c.Transport.MaxMessageBytes)
	}
	switch c.Transport.Mode {
	case TransportStdio, TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport.Mode)
	}
	return nil
}
