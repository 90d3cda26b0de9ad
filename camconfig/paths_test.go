package camconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Camera 0", want: "Camera_0"},
		{name: "Cam", want: "Cam"},
		{name: "USB  Cam", want: "USB__Cam"},
		{name: "Lifecam HD-3000 (front)", want: "Lifecam_HD-3000_(front)"},
		{name: "lower case", want: "lower_case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.name))
			assert.Equal(t, Slug(tt.name), Slug(tt.name))
		})
	}
}

func TestResolvePaths(t *testing.T) {
	root := filepath.Join("settings", "root")
	paths := ResolvePaths(root, "Camera 0")

	folder := filepath.Join(root, "cameras", "Camera_0")
	assert.Equal(t, Paths{
		Folder:     folder,
		Config:     filepath.Join(folder, "camera.json"),
		Pipelines:  filepath.Join(folder, "pipelines.json"),
		DriverMode: filepath.Join(folder, "drivermode.json"),
	}, paths)
	assert.Equal(t, filepath.Join(root, "cameras"), CamerasFolder(root))
}
