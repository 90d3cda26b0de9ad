package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gloworm-vision/gloworm-config/camera"
	"github.com/gloworm-vision/gloworm-config/store"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Server exposes the settings of every registered camera over HTTP.
type Server struct {
	Addr string

	Registry *camera.Registry
	Index    store.Store
	Logger   *logrus.Logger
}

// Handler returns the settings API routes.
func (s *Server) Handler() http.Handler {
	mux := httprouter.New()

	mux.HandlerFunc(http.MethodGet, "/cameras", s.cameras)
	mux.HandlerFunc(http.MethodGet, "/camera", s.getCurrentCamera)
	mux.HandlerFunc(http.MethodPut, "/camera", s.putCurrentCamera)

	mux.HandlerFunc(http.MethodGet, "/cameras/:name/config", s.getConfig)
	mux.HandlerFunc(http.MethodPut, "/cameras/:name/config", s.putConfig)
	mux.HandlerFunc(http.MethodGet, "/cameras/:name/pipelines", s.getPipelines)
	mux.HandlerFunc(http.MethodPut, "/cameras/:name/pipelines", s.putPipelines)
	mux.HandlerFunc(http.MethodGet, "/cameras/:name/drivermode", s.getDriverMode)
	mux.HandlerFunc(http.MethodPut, "/cameras/:name/drivermode", s.putDriverMode)

	mux.HandlerFunc(http.MethodGet, "/cameras/:name/state", s.getState)
	mux.HandlerFunc(http.MethodPut, "/cameras/:name/state", s.putState)
	mux.HandlerFunc(http.MethodGet, "/cameras/:name/active", s.getActive)

	return mux
}

func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       time.Second * 15,
		ReadHeaderTimeout: time.Second * 15,
		IdleTimeout:       time.Second * 30,
		MaxHeaderBytes:    4096,
	}

	listenErrs := make(chan error, 1)
	go func() {
		s.Logger.WithField("addr", s.Addr).Info("serving http")
		listenErrs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErrs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	}
}
