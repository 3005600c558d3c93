package config

// RendererConfig is the root config for renderer.json / renderer.yaml
type RendererConfig struct {
	Display   DisplayConfig   `json:"display" yaml:"display"`
	Assets    AssetsConfig    `json:"assets" yaml:"assets"`
	Transport TransportConfig `json:"transport" yaml:"transport"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// DisplayConfig holds the window used until the first snapshot arrives
type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int    `json:"screenHeight" yaml:"screenHeight"`
	Title        string `json:"title" yaml:"title"`
	Framerate    int    `json:"framerate" yaml:"framerate"`
}

// AssetsConfig holds the roots relative asset references are resolved against
type AssetsConfig struct {
	ImagesRoot   string `json:"imagesRoot" yaml:"imagesRoot"`
	FontsRoot    string `json:"fontsRoot" yaml:"fontsRoot"`
	FallbackIcon string `json:"fallbackIcon" yaml:"fallbackIcon"` // Relative to ImagesRoot
}

// TransportConfig selects where snapshots come from and events go to
type TransportConfig struct {
	Mode            string `json:"mode" yaml:"mode"`     // "stdio" or "websocket"
	Listen          string `json:"listen" yaml:"listen"` // WebSocket listen address
	QueueSize       int    `json:"queueSize" yaml:"queueSize"`
	MaxMessageBytes int    `json:"maxMessageBytes" yaml:"maxMessageBytes"`
}

// EventsConfig toggles optional outbound messages
type EventsConfig struct {
	MouseMotion bool `json:"mouseMotion" yaml:"mouseMotion"`
}

// LogConfig configures diagnostics
type LogConfig struct {
	Debug bool   `json:"debug" yaml:"debug"`
	Dir   string `json:"dir" yaml:"dir"` // Optional directory for a log file copy
}

// Transport modes
const (
	TransportStdio     = "stdio"
	TransportWebSocket = "websocket"
)

// Default returns the configuration used when no file is given
func Default() *RendererConfig {
	return &RendererConfig{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			Title:        "Simple 2D Renderer",
			Framerate:    60,
		},
		Assets: AssetsConfig{
			ImagesRoot:   "images/",
			FontsRoot:    "fonts/",
			FallbackIcon: "icon.png",
		},
		Transport: TransportConfig{
			Mode:            TransportStdio,
			Listen:          "127.0.0.1:8765",
			QueueSize:       64,
			MaxMessageBytes: 16 << 20,
		},
		Events: EventsConfig{
			MouseMotion: true,
		},
	}
}
