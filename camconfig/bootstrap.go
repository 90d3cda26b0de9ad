package camconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	folderMode = 0o755
	fileMode   = 0o644
)

// Bootstrap makes sure the camera folder and its three files exist, seeding
// missing files with defaults. Existing files are left alone and failures
// are logged, so it is safe to call any number of times.
func (s *Store[C, P, PP]) Bootstrap() {
	for _, err := range s.bootstrap() {
		s.warn(err)
	}
}

func (s *Store[C, P, PP]) bootstrap() []*Error {
	var errs []*Error

	if err := s.ensureFolder(); err != nil {
		errs = append(errs, s.fail(DirectoryCreate, s.paths.Folder, err))
	}

	// the remaining steps run even if the folder couldn't be made

	err := s.ensureFile(s.paths.Config, func() ([]byte, error) {
		return s.codec.Marshal(s.defaults.Config)
	})
	if err != nil {
		errs = append(errs, s.fail(FileCreate, s.paths.Config, err))
	}

	err = s.ensureFile(s.paths.Pipelines, func() ([]byte, error) {
		return nil, nil
	})
	if err != nil {
		errs = append(errs, s.fail(FileCreate, s.paths.Pipelines, err))
	}

	err = s.ensureFile(s.paths.DriverMode, func() ([]byte, error) {
		return s.codec.Marshal(s.defaultDriverMode())
	})
	if err != nil {
		errs = append(errs, s.fail(FileCreate, s.paths.DriverMode, err))
	}

	return errs
}

func (s *Store[C, P, PP]) ensureFolder() error {
	err := s.fs.MkdirAll(s.paths.Folder, folderMode)
	if err == nil {
		return nil
	}

	// someone else may have created it in the meantime
	if exists, _ := afero.DirExists(s.fs, s.paths.Folder); exists {
		return nil
	}

	return err
}

// ensureFile creates path with the content returned by seed unless it
// already exists. Creation is exclusive so content written concurrently by
// someone else is never replaced.
func (s *Store[C, P, PP]) ensureFile(path string, seed func() ([]byte, error)) error {
	if _, err := s.fs.Stat(path); err == nil {
		return nil
	}

	data, err := seed()
	if err != nil {
		return fmt.Errorf("unable to serialize default: %w", err)
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if errors.Is(err, os.ErrExist) {
		return nil
	} else if err != nil {
		return err
	}

	if len(data) > 0 {
		_, err = f.Write(data)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// leave nothing half written so the next bootstrap retries
		_ = s.fs.Remove(path)
		return err
	}

	return nil
}
