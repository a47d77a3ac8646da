package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log/level"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/metrics"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/services"
)

// App holds everything a front end needs
type App struct {
	Conf    global.Config
	Storage repository.Storage
	API     *repository.APIClient
	Console *services.Console
}

// Load reads the config file, sets up logging and builds the App
func Load(configFile string) (*App, error) {
	conf, err := global.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configFile, err)
	}
	global.Conf = conf
	global.SetupLogger(conf.Mode)
	return New(conf)
}

// New wires config -> storage -> API client -> services
func New(conf global.Config) (*App, error) {
	storage, err := ConfigStorage(conf.Storage)
	if err != nil {
		return nil, err
	}
	api := repository.NewAPIClient(conf.API.BaseURL, conf.API.Timeout, conf.API.UserAgent)
	if conf.Prometheus.Enabled {
		metrics.InitMetrics()
	}
	return &App{
		Conf:    conf,
		Storage: storage,
		API:     api,
		Console: services.NewConsole(api, storage, conf),
	}, nil
}

// ConfigStorage opens the configured backing of templates and saved senders.
// Remote backings are pinged once; a failing ping is logged, not fatal.
func ConfigStorage(conf global.StorageConfig) (repository.Storage, error) {
	storage, err := repository.OpenStorage(conf)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pErr := repository.CheckStorage(ctx, storage); pErr != nil {
		level.Warn(global.Logger).Log("msg", "storage not reachable", "storage", storage.Name(), "err", pErr)
	}
	level.Debug(global.Logger).Log("msg", "storage configured", "storage", storage.Name())
	return storage, nil
}

// ServeMetrics starts the /metrics listener in the background when enabled
func (a *App) ServeMetrics() {
	if !a.Conf.Prometheus.Enabled {
		return
	}
	go func() {
		level.Info(global.Logger).Log("msg", "serving metrics", "listen", a.Conf.Prometheus.Listen)
		if err := metrics.Serve(a.Conf.Prometheus.Listen); err != nil {
			level.Error(global.Logger).Log("msg", "metrics listener stopped", "err", err)
		}
	}()
}
