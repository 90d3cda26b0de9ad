package camera

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/gloworm-vision/gloworm-config/camconfig"
	"github.com/gloworm-vision/gloworm-config/pipeline"
	"github.com/gloworm-vision/gloworm-config/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownCamera = errors.New("unknown camera")

// Registry owns the settings root and the store of every known camera.
type Registry struct {
	root  string
	index store.Store
	opts  camconfig.Options

	mu sync.RWMutex
	// keyed by slug, so two names sharing a folder share one store
	cameras map[string]*cameraStore
}

// cameraStore serializes access to a camera's store, which does no locking
// of its own.
type cameraStore struct {
	name  string
	store *Store
	mu    sync.Mutex
}

// NewRegistry creates a registry for cameras stored under root. Camera
// names are recorded in index.
func NewRegistry(root string, index store.Store, opts camconfig.Options) *Registry {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Registry{
		root:    root,
		index:   index,
		opts:    opts,
		cameras: make(map[string]*cameraStore),
	}
}

// Root returns the settings root.
func (r *Registry) Root() string {
	return r.root
}

// Add registers a camera and bootstraps its settings folder. Adding a known
// camera, or any name resolving to the same folder, returns the existing
// store.
func (r *Registry) Add(name, path string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slug := camconfig.Slug(name)
	if c, ok := r.cameras[slug]; ok {
		return c.store, nil
	}

	s, err := camconfig.New(r.root, name, camconfig.Defaults[Config, pipeline.Settings]{
		Config:     DefaultConfig(name, path),
		DriverMode: pipeline.DriverMode(),
	}, r.opts)
	if err != nil {
		return nil, fmt.Errorf("unable to create store for camera %q: %w", name, err)
	}

	if err := r.index.AddCamera(name); err != nil {
		return nil, fmt.Errorf("unable to record camera: %w", err)
	}

	s.Bootstrap()
	r.cameras[slug] = &cameraStore{name: name, store: s}

	r.opts.Logger.WithField("camera", name).Debug("registered camera")

	return s, nil
}

// Names returns the registered camera names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.cameras))
	for _, c := range r.cameras {
		names = append(names, c.name)
	}
	sort.Strings(names)

	return names
}

// With runs fn with exclusive access to the named camera's store.
func (r *Registry) With(name string, fn func(s *Store) error) error {
	r.mu.RLock()
	c, ok := r.cameras[camconfig.Slug(name)]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCamera, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return fn(c.store)
}

// LoadAll registers every camera recorded in the index or found in the
// settings root, then loads their settings concurrently.
func (r *Registry) LoadAll(ctx context.Context) (map[string]Settings, error) {
	names, err := r.index.ListCameras()
	if err != nil {
		return nil, fmt.Errorf("unable to list known cameras: %w", err)
	}

	found, err := r.discover()
	if err != nil {
		r.opts.Logger.Warnf("unable to discover camera folders: %s", err)
	}

	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[camconfig.Slug(name)] = struct{}{}
	}
	for _, folder := range found {
		if _, ok := known[folder]; !ok {
			names = append(names, folder)
		}
	}

	for _, name := range names {
		if _, err := r.Add(name, ""); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	cameras := make([]*cameraStore, 0, len(r.cameras))
	for _, c := range r.cameras {
		cameras = append(cameras, c)
	}
	r.mu.RUnlock()

	var mu sync.Mutex
	settings := make(map[string]Settings, len(cameras))

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range cameras {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c.mu.Lock()
			loaded := Load(c.store)
			c.mu.Unlock()

			mu.Lock()
			settings[c.name] = loaded
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("unable to load cameras: %w", err)
	}

	r.opts.Logger.Infof("loaded settings for %d cameras", len(settings))

	return settings, nil
}

// discover lists the camera folders under the settings root. Folder names
// contain no spaces, so they are their own slug.
func (r *Registry) discover() ([]string, error) {
	infos, err := afero.ReadDir(r.opts.Fs, camconfig.CamerasFolder(r.root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var folders []string
	for _, info := range infos {
		if info.IsDir() {
			folders = append(folders, info.Name())
		}
	}

	return folders, nil
}
