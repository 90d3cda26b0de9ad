package camconfig

import (
	"errors"
	"fmt"
)

// Kind classifies a failure inside the store. None of them are fatal.
type Kind int

const (
	// DirectoryCreate means the camera folder could not be created and does
	// not already exist.
	DirectoryCreate Kind = iota + 1
	// FileCreate means a default file could not be written during bootstrap.
	FileCreate
	// Deserialize means a file was unreadable or its content malformed.
	Deserialize
	// Serialize means a save could not be written.
	Serialize
)

var (
	ErrDirectoryCreate = errors.New("unable to create camera config folder")
	ErrFileCreate      = errors.New("unable to create default camera config file")
	ErrDeserialize     = errors.New("unable to load camera config file")
	ErrSerialize       = errors.New("unable to save camera config file")

	// ErrEmptyName is returned by New when no camera name is given.
	ErrEmptyName = errors.New("camera name must not be empty")
)

func (k Kind) String() string {
	switch k {
	case DirectoryCreate:
		return "DirectoryCreateError"
	case FileCreate:
		return "FileCreateError"
	case Deserialize:
		return "DeserializeError"
	case Serialize:
		return "SerializeError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case DirectoryCreate:
		return ErrDirectoryCreate
	case FileCreate:
		return ErrFileCreate
	case Deserialize:
		return ErrDeserialize
	case Serialize:
		return ErrSerialize
	default:
		return nil
	}
}

// Error is a classified store failure. It matches its kind's sentinel with
// errors.Is, e.g. errors.Is(err, ErrDeserialize).
type Error struct {
	Kind   Kind
	Camera string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	msg := "camera config failure"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}

	return fmt.Sprintf("%s %q: %s", msg, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
