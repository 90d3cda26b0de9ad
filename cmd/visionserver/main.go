package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gloworm-vision/gloworm-config/camconfig"
	"github.com/gloworm-vision/gloworm-config/camera"
	"github.com/gloworm-vision/gloworm-config/config"
	"github.com/gloworm-vision/gloworm-config/server"
	"github.com/gloworm-vision/gloworm-config/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"
)

func main() {
	cmd := &cobra.Command{
		Use:          "visionserver",
		Short:        "visionserver serves the settings of the device's cameras",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitConfig(cmd)
			if err != nil {
				return fmt.Errorf("unable to initialize config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}
	config.BindFlags(cmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("unable to setup logger: %w", err)
	}

	if err := os.MkdirAll(cfg.SettingsRoot, 0o755); err != nil {
		logger.Warnf("unable to create settings root: %s", err)
	}

	index, err := store.OpenBBolt(cfg.IndexPath, 0o666, &bbolt.Options{Timeout: time.Second * 5})
	if err != nil {
		return fmt.Errorf("unable to open camera index: %w", err)
	}
	defer index.Close()

	registry := camera.NewRegistry(cfg.SettingsRoot, index, camconfig.Options{
		Fs:     afero.NewOsFs(),
		Logger: logger,
	})

	for _, c := range cfg.Cameras {
		if _, err := registry.Add(c.Name, c.Path); err != nil {
			return fmt.Errorf("unable to add camera %q: %w", c.Name, err)
		}
	}

	cameras, err := registry.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("unable to load cameras: %w", err)
	}

	for name, settings := range cameras {
		logger.WithFields(logrus.Fields{
			"camera":    name,
			"pipelines": len(settings.Pipelines),
		}).Info("camera ready")
	}

	s := server.Server{Addr: cfg.Addr, Registry: registry, Index: index, Logger: logger}

	return s.Run(ctx)
}
