package camconfig

import (
	"fmt"

	"github.com/spf13/afero"
)

// SaveConfig overwrites camera.json. Failures are logged and otherwise
// ignored; the caller keeps running on its in-memory config.
func (s *Store[C, P, PP]) SaveConfig(config C) {
	if err := s.write(s.paths.Config, config); err != nil {
		s.warn(err)
	}
}

// SavePipelines overwrites pipelines.json, preserving order.
func (s *Store[C, P, PP]) SavePipelines(pipelines []P) {
	if pipelines == nil {
		pipelines = []P{}
	}

	if err := s.write(s.paths.Pipelines, pipelines); err != nil {
		s.warn(err)
	}
}

// SaveDriverMode overwrites drivermode.json.
func (s *Store[C, P, PP]) SaveDriverMode(driverMode P) {
	if err := s.write(s.paths.DriverMode, driverMode); err != nil {
		s.warn(err)
	}
}

// write replaces path through a temp file and a rename, so a failed save
// leaves the previous content in place.
func (s *Store[C, P, PP]) write(path string, v interface{}) *Error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return s.fail(Serialize, path, fmt.Errorf("unable to marshal: %w", err))
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, fileMode); err != nil {
		_ = s.fs.Remove(tmp)
		return s.fail(Serialize, path, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return s.fail(Serialize, path, fmt.Errorf("unable to replace file: %w", err))
	}

	return nil
}
