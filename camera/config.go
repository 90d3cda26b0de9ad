// Package camera ties the per-camera settings stores to the cameras known
// by the device.
package camera

import (
	"github.com/gloworm-vision/gloworm-config/camconfig"
	"github.com/gloworm-vision/gloworm-config/pipeline"
	"github.com/gloworm-vision/gloworm-config/store"
)

// Config is the device level settings of a camera, stored in camera.json.
type Config struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Nickname string `json:"nickname"`

	FOV            float64 `json:"fov"`
	VideoModeIndex int     `json:"videomode"`
	StreamDivisor  int     `json:"streamDivisor"`
}

const defaultFOV = 70

// DefaultConfig is the preliminary config of a camera seen for the first
// time.
func DefaultConfig(name, path string) Config {
	return Config{
		Name:          name,
		Path:          path,
		Nickname:      name,
		FOV:           defaultFOV,
		StreamDivisor: 1,
	}
}

// Store persists one camera's settings.
type Store = camconfig.Store[Config, pipeline.Settings, *pipeline.Settings]

// Settings is everything stored for one camera.
type Settings struct {
	Config     Config              `json:"config"`
	Pipelines  []pipeline.Settings `json:"pipelines"`
	DriverMode pipeline.Settings   `json:"driverMode"`
}

// Load bootstraps the camera folder and reads all of its settings.
func Load(s *Store) Settings {
	return Settings{
		Config:     s.Load(),
		Pipelines:  s.LoadPipelines(),
		DriverMode: s.LoadDriverMode(),
	}
}

// Active returns the profile the camera should run with. An out of range
// pipeline index falls back to driver mode.
func (s Settings) Active(state store.CameraState) pipeline.Settings {
	if state.DriverMode || state.CurrentPipeline < 0 || state.CurrentPipeline >= len(s.Pipelines) {
		return s.DriverMode
	}

	return s.Pipelines[state.CurrentPipeline]
}
