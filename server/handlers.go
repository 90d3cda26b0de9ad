package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gloworm-vision/gloworm-config/camconfig"
	"github.com/gloworm-vision/gloworm-config/camera"
	"github.com/gloworm-vision/gloworm-config/pipeline"
	"github.com/gloworm-vision/gloworm-config/store"
	"github.com/julienschmidt/httprouter"
)

func cameraName(req *http.Request) string {
	return httprouter.ParamsFromContext(req.Context()).ByName("name")
}

// withCamera runs fn against the camera named in the route and responds
// with 404 if it isn't registered.
func (s *Server) withCamera(res http.ResponseWriter, req *http.Request, fn func(c *camera.Store)) bool {
	err := s.Registry.With(cameraName(req), func(c *camera.Store) error {
		fn(c)
		return nil
	})
	if errors.Is(err, camera.ErrUnknownCamera) {
		respond(res, err, http.StatusNotFound)
		return false
	} else if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return false
	}

	return true
}

func (s *Server) cameras(res http.ResponseWriter, req *http.Request) {
	respond(res, s.Registry.Names(), http.StatusOK)
}

func (s *Server) getCurrentCamera(res http.ResponseWriter, req *http.Request) {
	name, err := s.Index.CurrentCamera()
	if errors.Is(err, store.ErrNotFound) {
		respond(res, err, http.StatusNotFound)
		return
	} else if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, name, http.StatusOK)
}

func (s *Server) putCurrentCamera(res http.ResponseWriter, req *http.Request) {
	var name string
	if err := json.NewDecoder(req.Body).Decode(&name); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	if err := s.Index.PutCurrentCamera(name); errors.Is(err, store.ErrNotFound) {
		respond(res, err, http.StatusNotFound)
		return
	} else if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, nil, http.StatusNoContent)
}

func (s *Server) getConfig(res http.ResponseWriter, req *http.Request) {
	var config camera.Config
	if s.withCamera(res, req, func(c *camera.Store) { config = c.LoadConfig() }) {
		respond(res, config, http.StatusOK)
	}
}

func (s *Server) putConfig(res http.ResponseWriter, req *http.Request) {
	var config camera.Config
	if err := json.NewDecoder(req.Body).Decode(&config); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	// the name is the camera's identity and can't be changed here
	config.Name = cameraName(req)

	if s.withCamera(res, req, func(c *camera.Store) { c.SaveConfig(config) }) {
		respond(res, nil, http.StatusNoContent)
	}
}

func (s *Server) getPipelines(res http.ResponseWriter, req *http.Request) {
	var pipelines []pipeline.Settings
	if s.withCamera(res, req, func(c *camera.Store) { pipelines = c.LoadPipelines() }) {
		respond(res, pipelines, http.StatusOK)
	}
}

func (s *Server) putPipelines(res http.ResponseWriter, req *http.Request) {
	var pipelines []pipeline.Settings
	if err := json.NewDecoder(req.Body).Decode(&pipelines); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	for i, p := range pipelines {
		if err := p.Validate(); err != nil {
			respond(res, fmt.Errorf("invalid pipeline %d: %w", i, err), http.StatusUnprocessableEntity)
			return
		}
	}

	if s.withCamera(res, req, func(c *camera.Store) { c.SavePipelines(pipelines) }) {
		respond(res, nil, http.StatusNoContent)
	}
}

func (s *Server) getDriverMode(res http.ResponseWriter, req *http.Request) {
	var driverMode pipeline.Settings
	if s.withCamera(res, req, func(c *camera.Store) { driverMode = c.LoadDriverMode() }) {
		respond(res, driverMode, http.StatusOK)
	}
}

func (s *Server) putDriverMode(res http.ResponseWriter, req *http.Request) {
	var driverMode pipeline.Settings
	if err := json.NewDecoder(req.Body).Decode(&driverMode); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	driverMode = camconfig.NewDriverMode[pipeline.Settings](driverMode)
	if err := driverMode.Validate(); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	if s.withCamera(res, req, func(c *camera.Store) { c.SaveDriverMode(driverMode) }) {
		respond(res, nil, http.StatusNoContent)
	}
}

func (s *Server) getState(res http.ResponseWriter, req *http.Request) {
	var state store.CameraState
	var err error
	if !s.withCamera(res, req, func(c *camera.Store) { state, err = s.Index.CameraState(c.Name()) }) {
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		respond(res, err, http.StatusNotFound)
		return
	} else if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, state, http.StatusOK)
}

func (s *Server) putState(res http.ResponseWriter, req *http.Request) {
	var state store.CameraState
	if err := json.NewDecoder(req.Body).Decode(&state); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	// checked and stored under the camera lock so the pipelines can't
	// shrink in between
	var status int
	var stateErr error
	ok := s.withCamera(res, req, func(c *camera.Store) {
		pipelines := len(c.LoadPipelines())
		if !state.DriverMode && (state.CurrentPipeline < 0 || state.CurrentPipeline >= pipelines) {
			status = http.StatusUnprocessableEntity
			stateErr = fmt.Errorf("pipeline %d out of range, camera has %d", state.CurrentPipeline, pipelines)
			return
		}

		if err := s.Index.PutCameraState(c.Name(), state); err != nil {
			status = http.StatusInternalServerError
			stateErr = err
		}
	})
	if !ok {
		return
	}

	if stateErr != nil {
		respond(res, stateErr, status)
		return
	}

	respond(res, nil, http.StatusNoContent)
}

func (s *Server) getActive(res http.ResponseWriter, req *http.Request) {
	var settings camera.Settings
	var state store.CameraState
	var err error
	ok := s.withCamera(res, req, func(c *camera.Store) {
		settings = camera.Settings{Pipelines: c.LoadPipelines(), DriverMode: c.LoadDriverMode()}
		state, err = s.Index.CameraState(c.Name())
	})
	if !ok {
		return
	}

	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, settings.Active(state), http.StatusOK)
}
