package camconfig

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// LoadConfig returns the stored device config, or the preliminary config
// when camera.json can't be read or parsed.
func (s *Store[C, P, PP]) LoadConfig() C {
	config, err := read[C](s, s.paths.Config)
	if err != nil {
		s.warn(err)
		return s.defaults.Config
	}

	return config
}

// LoadPipelines returns the stored pipeline profiles in order. An empty
// pipelines.json means there are no pipelines yet; anything unreadable
// yields an empty list.
func (s *Store[C, P, PP]) LoadPipelines() []P {
	pipelines, err := s.readPipelines()
	if err != nil {
		s.warn(err)
		return []P{}
	}

	return pipelines
}

func (s *Store[C, P, PP]) readPipelines() ([]P, *Error) {
	data, err := afero.ReadFile(s.fs, s.paths.Pipelines)
	if err != nil {
		return nil, s.fail(Deserialize, s.paths.Pipelines, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []P{}, nil
	}

	var pipelines []P
	if err := s.codec.Unmarshal(data, &pipelines); err != nil {
		return nil, s.fail(Deserialize, s.paths.Pipelines, fmt.Errorf("unable to unmarshal pipelines: %w", err))
	}

	if pipelines == nil {
		return []P{}, nil
	}

	return pipelines, nil
}

// LoadDriverMode returns the stored driver mode profile, or a fresh one
// nicknamed DriverModeNickname when drivermode.json can't be read or parsed.
func (s *Store[C, P, PP]) LoadDriverMode() P {
	driverMode, err := read[P](s, s.paths.DriverMode)
	if err != nil {
		s.warn(err)
		return s.defaultDriverMode()
	}

	return driverMode
}

var errNoValue = errors.New("file holds no value")

// read decodes the value stored at path. A file holding null or nothing at
// all is as unusable as a corrupt one. read never modifies the file, a
// corrupt file is left for inspection.
func read[T any, C any, P any, PP Profile[P]](s *Store[C, P, PP], path string) (T, *Error) {
	var zero T

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return zero, s.fail(Deserialize, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return zero, s.fail(Deserialize, path, errNoValue)
	}

	var v *T
	if err := s.codec.Unmarshal(data, &v); err != nil {
		return zero, s.fail(Deserialize, path, fmt.Errorf("unable to unmarshal: %w", err))
	}
	if v == nil {
		return zero, s.fail(Deserialize, path, errNoValue)
	}

	return *v, nil
}
