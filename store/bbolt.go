package store

import (
	"encoding/json"
	"fmt"
	"os"

	"go.etcd.io/bbolt"
)

type BBolt struct {
	db *bbolt.DB
}

// compile-time check for whether BBolt satisfies the Store interface
var _ Store = &BBolt{}

const (
	bboltGlowormBucket = "gloworm"
	bboltCamerasBucket = "cameras" // child of gloworm

	// gloworm keys
	bboltCurrentCameraKey = "current-camera"
)

// OpenBBolt opens a BBoltDB database at the given path and creates the needed buckets
// if they don't exist.
func OpenBBolt(path string, mode os.FileMode, options *bbolt.Options) (*BBolt, error) {
	db, err := bbolt.Open(path, mode, options)
	if err != nil {
		return nil, fmt.Errorf("unable to open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		glowormBucket, err := tx.CreateBucketIfNotExists([]byte(bboltGlowormBucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %q: %w", bboltGlowormBucket, err)
		}

		_, err = glowormBucket.CreateBucketIfNotExists([]byte(bboltCamerasBucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %q: %w", bboltCamerasBucket, err)
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create bbolt buckets: %w", err)
	}

	return &BBolt{
		db: db,
	}, nil
}

func (b *BBolt) Close() error {
	return b.db.Close()
}

func camerasBucket(tx *bbolt.Tx) *bbolt.Bucket {
	return tx.Bucket([]byte(bboltGlowormBucket)).Bucket([]byte(bboltCamerasBucket))
}

// ListCameras returns the known camera names in key order.
func (b *BBolt) ListCameras() ([]string, error) {
	names := make([]string, 0)

	err := b.db.View(func(tx *bbolt.Tx) error {
		err := camerasBucket(tx).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
		if err != nil {
			return fmt.Errorf("unable to iterate over cameras bucket: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list cameras: %w", err)
	}

	return names, nil
}

// AddCamera records a camera with a zero state unless it is already known.
func (b *BBolt) AddCamera(name string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := camerasBucket(tx)
		if bucket.Get([]byte(name)) != nil {
			return nil
		}

		return putCameraState(bucket, name, CameraState{})
	})
	if err != nil {
		return fmt.Errorf("unable to add camera %q: %w", name, err)
	}

	return nil
}

func (b *BBolt) CameraState(name string) (CameraState, error) {
	var state CameraState
	err := b.db.View(func(tx *bbolt.Tx) error {
		stateJSON := camerasBucket(tx).Get([]byte(name))
		if stateJSON == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(stateJSON, &state); err != nil {
			return fmt.Errorf("unable to unmarshal camera state JSON: %w", err)
		}

		return nil
	})
	if err != nil {
		return state, fmt.Errorf("unable to get camera state %q: %w", name, err)
	}

	return state, nil
}

func (b *BBolt) PutCameraState(name string, state CameraState) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return putCameraState(camerasBucket(tx), name, state)
	})
	if err != nil {
		return fmt.Errorf("unable to update camera state: %w", err)
	}

	return nil
}

func putCameraState(bucket *bbolt.Bucket, name string, state CameraState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("unable to marshal camera state: %w", err)
	}

	if err := bucket.Put([]byte(name), stateJSON); err != nil {
		return fmt.Errorf("unable to put camera state %q: %w", name, err)
	}

	return nil
}

func (b *BBolt) CurrentCamera() (string, error) {
	var current string

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bboltGlowormBucket))
		value := bucket.Get([]byte(bboltCurrentCameraKey))
		if value == nil {
			return ErrNotFound
		}

		current = string(value)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("unable to get current camera: %w", err)
	}

	return current, nil
}

// PutCurrentCamera selects a camera. Only known cameras can be selected.
func (b *BBolt) PutCurrentCamera(name string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if camerasBucket(tx).Get([]byte(name)) == nil {
			return fmt.Errorf("camera %q: %w", name, ErrNotFound)
		}

		bucket := tx.Bucket([]byte(bboltGlowormBucket))
		return bucket.Put([]byte(bboltCurrentCameraKey), []byte(name))
	})
	if err != nil {
		return fmt.Errorf("unable to put current camera: %w", err)
	}

	return nil
}
