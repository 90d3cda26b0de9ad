package camconfig

import (
	"path/filepath"
	"strings"
)

const (
	camerasFolder = "cameras"

	configFile     = "camera.json"
	pipelinesFile  = "pipelines.json"
	driverModeFile = "drivermode.json"
)

// Paths is the on-disk layout of a single camera's settings.
type Paths struct {
	Folder     string
	Config     string
	Pipelines  string
	DriverMode string
}

// Slug turns a camera display name into its folder name. Only spaces are
// replaced, so a given name always maps to the same folder.
func Slug(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// ResolvePaths returns the layout for the camera called name under the
// settings root: root/cameras/<slug>/{camera,pipelines,drivermode}.json.
func ResolvePaths(root, name string) Paths {
	folder := filepath.Join(root, camerasFolder, Slug(name))

	return Paths{
		Folder:     folder,
		Config:     filepath.Join(folder, configFile),
		Pipelines:  filepath.Join(folder, pipelinesFile),
		DriverMode: filepath.Join(folder, driverModeFile),
	}
}

// CamerasFolder is the directory holding every camera folder under root.
func CamerasFolder(root string) string {
	return filepath.Join(root, camerasFolder)
}
