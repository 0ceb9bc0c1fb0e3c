// Package config handles configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Renderer RendererConfig `yaml:"renderer"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// RendererConfig holds deferred pipeline settings.
type RendererConfig struct {
	// ClearColor is the RGBA background wherever nothing is drawn.
	ClearColor [4]float32 `yaml:"clear_color"`

	// Ambient is the scene-wide ambient light term, applied once per
	// pixel regardless of light count.
	Ambient [3]float32 `yaml:"ambient"`

	// Emission toggles the emission channel contribution.
	Emission bool `yaml:"emission"`

	// LightCutoff is the attenuation level below which a light is
	// culled. Values outside (0,1) fall back to the built-in default.
	LightCutoff float32 `yaml:"light_cutoff"`

	// MaxQuads pre-sizes the per-frame instance buffer.
	MaxQuads int `yaml:"max_quads"`
}

// DebugConfig holds development and HUD settings.
type DebugConfig struct {
	// Channel starts the renderer in the single-channel view: albedo,
	// normal, emission or position. Empty means normal lit output.
	Channel string `yaml:"channel"`

	ShowFPS    bool   `yaml:"show_fps"`
	ShowStats  bool   `yaml:"show_stats"`
	CaptureDir string `yaml:"capture_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Renderer: RendererConfig{
			ClearColor:  [4]float32{0.1, 0.1, 0.15, 1.0},
			Ambient:     [3]float32{0.2, 0.2, 0.22},
			Emission:    true,
			LightCutoff: 1.0 / 256.0,
			MaxQuads:    4096,
		},
		Debug: DebugConfig{
			Channel:    "",
			ShowFPS:    false,
			ShowStats:  false,
			CaptureDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
