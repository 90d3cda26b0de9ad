// Package camconfig persists the settings of a single camera: its device
// config, its ordered pipeline profiles and its driver mode profile.
//
// Every load returns a usable value and every save degrades to a logged
// warning, so a broken settings folder never stops the device from running.
package camconfig

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DriverModeNickname is the nickname carried by every default driver mode
// profile.
const DriverModeNickname = "DRIVERMODE"

// Profile is satisfied by a pointer to a pipeline profile type.
type Profile[P any] interface {
	*P
	SetNickname(nickname string)
}

// Defaults are the values a store falls back to.
type Defaults[C any, P any] struct {
	// Config seeds camera.json on first bootstrap and is returned when it
	// can't be loaded.
	Config C
	// DriverMode seeds default driver mode profiles. Its nickname is always
	// replaced by DriverModeNickname.
	DriverMode P
}

// Options configures where and how a store reads and writes.
type Options struct {
	Fs     afero.Fs
	Logger logrus.FieldLogger
	Codec  Codec
}

// Store persists one camera's settings under root/cameras/<slug>/.
//
// A Store does no locking: callers sharing one between goroutines must
// serialize access themselves. Stores for different cameras are independent.
type Store[C any, P any, PP Profile[P]] struct {
	name     string
	paths    Paths
	defaults Defaults[C, P]

	fs     afero.Fs
	logger logrus.FieldLogger
	codec  Codec
}

// New creates the store for the camera called name under the settings root.
// Nothing is touched on disk until Bootstrap or Load is called.
func New[C any, P any, PP Profile[P]](root, name string, defaults Defaults[C, P], opts Options) (*Store[C, P, PP], error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Codec == nil {
		opts.Codec = JSON
	}

	return &Store[C, P, PP]{
		name:     name,
		paths:    ResolvePaths(root, name),
		defaults: defaults,
		fs:       opts.Fs,
		logger:   opts.Logger.WithField("camera", name),
		codec:    opts.Codec,
	}, nil
}

// Name returns the camera display name the store was created with.
func (s *Store[C, P, PP]) Name() string {
	return s.name
}

// Paths returns the store's on-disk layout.
func (s *Store[C, P, PP]) Paths() Paths {
	return s.paths
}

// Load bootstraps the camera folder and returns the device config.
func (s *Store[C, P, PP]) Load() C {
	s.Bootstrap()

	return s.LoadConfig()
}

// NewDriverMode returns a copy of seed renamed to DriverModeNickname.
func NewDriverMode[P any, PP Profile[P]](seed P) P {
	PP(&seed).SetNickname(DriverModeNickname)
	return seed
}

func (s *Store[C, P, PP]) defaultDriverMode() P {
	return NewDriverMode[P, PP](s.defaults.DriverMode)
}

func (s *Store[C, P, PP]) fail(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Camera: s.name, Path: path, Err: err}
}

// warn logs a classified failure. It is the only thing that ever happens to
// an error inside the store.
func (s *Store[C, P, PP]) warn(err *Error) {
	s.logger.WithFields(logrus.Fields{
		"kind": err.Kind.String(),
		"path": err.Path,
	}).WithError(err.Err).Warn(err.Kind.sentinel())
}
