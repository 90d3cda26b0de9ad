package store

import (
	"errors"
	"io"
)

// ErrNotFound is returned for cameras or settings that were never stored.
var ErrNotFound = errors.New("not found")

// CameraState is what the device remembers about a camera besides its
// settings folder.
type CameraState struct {
	// CurrentPipeline indexes the camera's ordered pipeline profiles.
	CurrentPipeline int  `json:"currentPipeline"`
	DriverMode      bool `json:"driverMode"`
}

// Store describes a persistent index of the cameras known to the device.
type Store interface {
	ListCameras() ([]string, error)
	AddCamera(name string) error

	CameraState(name string) (CameraState, error)
	PutCameraState(name string, state CameraState) error

	CurrentCamera() (string, error)
	PutCurrentCamera(name string) error

	io.Closer
}
