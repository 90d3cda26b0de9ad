package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func openTestBBolt(t *testing.T) (*BBolt, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.db")
	b, err := OpenBBolt(path, 0o600, &bbolt.Options{Timeout: time.Second})
	require.NoError(t, err)

	return b, path
}

func TestBBoltCameras(t *testing.T) {
	b, _ := openTestBBolt(t)
	defer b.Close()

	names, err := b.ListCameras()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, b.AddCamera("Camera 1"))
	require.NoError(t, b.AddCamera("Camera 0"))

	names, err = b.ListCameras()
	require.NoError(t, err)
	assert.Equal(t, []string{"Camera 0", "Camera 1"}, names)

	state, err := b.CameraState("Camera 0")
	require.NoError(t, err)
	assert.Equal(t, CameraState{}, state)

	_, err = b.CameraState("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBBoltAddCameraKeepsState(t *testing.T) {
	b, _ := openTestBBolt(t)
	defer b.Close()

	require.NoError(t, b.AddCamera("Camera 0"))
	require.NoError(t, b.PutCameraState("Camera 0", CameraState{CurrentPipeline: 3, DriverMode: true}))
	require.NoError(t, b.AddCamera("Camera 0"))

	state, err := b.CameraState("Camera 0")
	require.NoError(t, err)
	assert.Equal(t, CameraState{CurrentPipeline: 3, DriverMode: true}, state)
}

func TestBBoltCurrentCamera(t *testing.T) {
	b, _ := openTestBBolt(t)
	defer b.Close()

	_, err := b.CurrentCamera()
	assert.ErrorIs(t, err, ErrNotFound)

	err = b.PutCurrentCamera("Camera 0")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.AddCamera("Camera 0"))
	require.NoError(t, b.PutCurrentCamera("Camera 0"))

	current, err := b.CurrentCamera()
	require.NoError(t, err)
	assert.Equal(t, "Camera 0", current)
}

func TestBBoltPersists(t *testing.T) {
	b, path := openTestBBolt(t)
	require.NoError(t, b.AddCamera("Cam"))
	require.NoError(t, b.PutCameraState("Cam", CameraState{CurrentPipeline: 1}))
	require.NoError(t, b.PutCurrentCamera("Cam"))
	require.NoError(t, b.Close())

	reopened, err := OpenBBolt(path, 0o600, nil)
	require.NoError(t, err)
	defer reopened.Close()

	state, err := reopened.CameraState("Cam")
	require.NoError(t, err)
	assert.Equal(t, CameraState{CurrentPipeline: 1}, state)

	current, err := reopened.CurrentCamera()
	require.NoError(t, err)
	assert.Equal(t, "Cam", current)
}
