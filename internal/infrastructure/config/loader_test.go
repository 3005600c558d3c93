package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestLoader_LoadRenderer_JSON(t *testing.T) {
	fsys := fstest.MapFS{
		"renderer.json": {Data: []byte(`{
			"display": {"screenWidth": 1024, "screenHeight": 768, "title": "Tanks", "framerate": 30},
			"assets": {"imagesRoot": "art/"},
			"transport": {"mode": "websocket", "listen": ":9000"}
		}`)},
	}
	loader := NewFSLoader(fsys, "configs").WithEnv(noEnv)

	cfg, err := loader.LoadRenderer("renderer.json")
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Display.ScreenWidth)
	assert.Equal(t, 768, cfg.Display.ScreenHeight)
	assert.Equal(t, "Tanks", cfg.Display.Title)
	assert.Equal(t, 30, cfg.Display.Framerate)
	assert.Equal(t, "art/", cfg.Assets.ImagesRoot)
	assert.Equal(t, "fonts/", cfg.Assets.FontsRoot, "unset fields keep defaults")
	assert.Equal(t, TransportWebSocket, cfg.Transport.Mode)
	assert.Equal(t, ":9000", cfg.Transport.Listen)
	assert.Equal(t, 64, cfg.Transport.QueueSize)
}

func TestLoader_LoadRenderer_YAML(t *testing.T) {
	fsys := fstest.MapFS{
		"renderer.yaml": {Data: []byte("display:\n  title: From YAML\nevents:\n  mouseMotion: false\nlog:\n  debug: true\n")},
	}
	loader := NewFSLoader(fsys, "configs").WithEnv(noEnv)

	cfg, err := loader.LoadRenderer("renderer.yaml")
	require.NoError(t, err)

	assert.Equal(t, "From YAML", cfg.Display.Title)
	assert.Equal(t, 800, cfg.Display.ScreenWidth)
	assert.False(t, cfg.Events.MouseMotion)
	assert.True(t, cfg.Log.Debug)
}

func TestLoader_LoadRenderer_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json":  {Data: []byte(`{"display": `)},
		"invalid.json": {Data: []byte(`{"transport": {"mode": "carrier-pigeon"}}`)},
	}
	loader := NewFSLoader(fsys, "configs").WithEnv(noEnv)

	_, err := loader.LoadRenderer("missing.json")
	assert.Error(t, err)

	_, err = loader.LoadRenderer("broken.json")
	assert.ErrorContains(t, err, "failed to parse")

	_, err = loader.LoadRenderer("invalid.json")
	assert.ErrorContains(t, err, "unknown transport")
}

func TestLoader_EnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvImagesPath: "/srv/images",
		EnvFontsPath:  "/srv/fonts",
		EnvLogDebug:   "true",
	}
	loader := NewFSLoader(fstest.MapFS{}, "configs").WithEnv(func(k string) string { return env[k] })

	cfg := loader.LoadDefault()

	assert.Equal(t, "/srv/images", cfg.Assets.ImagesRoot)
	assert.Equal(t, "/srv/fonts", cfg.Assets.FontsRoot)
	assert.True(t, cfg.Log.Debug)
}

func TestLoader_LoadAll(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{}, "configs").WithEnv(noEnv)

		cfg, err := loader.LoadAll()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("prefers json", func(t *testing.T) {
		fsys := fstest.MapFS{
			"renderer.json": {Data: []byte(`{"display": {"title": "json"}}`)},
			"renderer.yaml": {Data: []byte("display:\n  title: yaml\n")},
		}
		loader := NewFSLoader(fsys, "configs").WithEnv(noEnv)

		cfg, err := loader.LoadAll()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Display.Title)
	})
}

func TestRendererConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RendererConfig)
	}{
		{"zero width", func(c *RendererConfig) { c.Display.ScreenWidth = 0 }},
		{"zero framerate", func(c *RendererConfig) { c.Display.Framerate = 0 }},
		{"negative queue", func(c *RendererConfig) { c.Transport.QueueSize = -1 }},
		{"zero max message", func(c *RendererConfig) { c.Transport.MaxMessageBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
