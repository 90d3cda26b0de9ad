// Package pipeline defines the settings of a single vision processing
// pipeline, as stored per camera.
package pipeline

import (
	"errors"
	"fmt"
)

type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// OpenCV HSV ranges for 8 bit images.
const (
	maxHue        = 180
	maxSaturation = 255
	maxValue      = 255
)

func (h HSV) validate() error {
	if h.H < 0 || h.H > maxHue {
		return fmt.Errorf("hue %v out of range [0, %d]", h.H, maxHue)
	}
	if h.S < 0 || h.S > maxSaturation {
		return fmt.Errorf("saturation %v out of range [0, %d]", h.S, maxSaturation)
	}
	if h.V < 0 || h.V > maxValue {
		return fmt.Errorf("value %v out of range [0, %d]", h.V, maxValue)
	}

	return nil
}

// Settings is one pipeline profile. Contour bounds are fractions of the
// image area.
type Settings struct {
	Nickname string `json:"nickname"`

	Exposure   float64 `json:"exposure"`
	Brightness float64 `json:"brightness"`

	MinThresh  HSV     `json:"minThresh"`
	MaxThresh  HSV     `json:"maxThresh"`
	MinContour float64 `json:"minContour"`
	MaxContour float64 `json:"maxContour"`

	Erode  bool `json:"erode"`
	Dilate bool `json:"dilate"`
}

// New returns settings with thresholds that let everything through.
func New(nickname string) Settings {
	return Settings{
		Nickname:   nickname,
		Exposure:   50,
		Brightness: 50,
		MaxThresh:  HSV{H: maxHue, S: maxSaturation, V: maxValue},
		MaxContour: 1,
	}
}

// DriverMode is the seed for a camera's driver mode profile: a bright,
// unprocessed image meant for a human driver.
func DriverMode() Settings {
	s := New("")
	s.Exposure = 100

	return s
}

// SetNickname renames the profile.
func (s *Settings) SetNickname(nickname string) {
	s.Nickname = nickname
}

var ErrNoNickname = errors.New("pipeline nickname must not be empty")

// Validate reports settings a camera can't run with.
func (s Settings) Validate() error {
	if s.Nickname == "" {
		return ErrNoNickname
	}

	if err := s.MinThresh.validate(); err != nil {
		return fmt.Errorf("invalid min threshold: %w", err)
	}
	if err := s.MaxThresh.validate(); err != nil {
		return fmt.Errorf("invalid max threshold: %w", err)
	}

	if s.MinContour < 0 || s.MaxContour > 1 || s.MinContour > s.MaxContour {
		return fmt.Errorf("contour bounds [%v, %v] must be ordered fractions of the image area", s.MinContour, s.MaxContour)
	}

	if s.Exposure < 0 || s.Exposure > 100 {
		return fmt.Errorf("exposure %v out of range [0, 100]", s.Exposure)
	}
	if s.Brightness < 0 || s.Brightness > 100 {
		return fmt.Errorf("brightness %v out of range [0, 100]", s.Brightness)
	}

	return nil
}
