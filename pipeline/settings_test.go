package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsValid(t *testing.T) {
	assert.NoError(t, New("Default").Validate())
}

func TestDriverMode(t *testing.T) {
	s := DriverMode()
	s.SetNickname("DRIVERMODE")

	assert.Equal(t, "DRIVERMODE", s.Nickname)
	assert.Equal(t, 100.0, s.Exposure)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Settings)
		wantErr bool
	}{
		{name: "valid", modify: func(s *Settings) {}},
		{name: "no nickname", modify: func(s *Settings) { s.Nickname = "" }, wantErr: true},
		{name: "hue too high", modify: func(s *Settings) { s.MaxThresh.H = 181 }, wantErr: true},
		{name: "negative saturation", modify: func(s *Settings) { s.MinThresh.S = -1 }, wantErr: true},
		{name: "value too high", modify: func(s *Settings) { s.MaxThresh.V = 256 }, wantErr: true},
		{name: "contours reversed", modify: func(s *Settings) { s.MinContour, s.MaxContour = 0.5, 0.1 }, wantErr: true},
		{name: "contour above image", modify: func(s *Settings) { s.MaxContour = 1.5 }, wantErr: true},
		{name: "exposure", modify: func(s *Settings) { s.Exposure = 101 }, wantErr: true},
		{name: "brightness", modify: func(s *Settings) { s.Brightness = -3 }, wantErr: true},
		{name: "narrow band", modify: func(s *Settings) {
			s.MinThresh = HSV{H: 60, S: 100, V: 100}
			s.MaxThresh = HSV{H: 90, S: 255, V: 255}
			s.MinContour, s.MaxContour = 0.01, 0.2
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("target")
			tt.modify(&s)

			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
