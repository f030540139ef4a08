package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/sqledu-client/internal/adapter"
	"github.com/MKhiriev/sqledu-client/internal/api"
	"github.com/MKhiriev/sqledu-client/internal/client"
	"github.com/MKhiriev/sqledu-client/internal/config"
	"github.com/MKhiriev/sqledu-client/internal/dispatcher"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/notify"
	"github.com/MKhiriev/sqledu-client/internal/service"
	"github.com/MKhiriev/sqledu-client/internal/store"
	"github.com/MKhiriev/sqledu-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		client.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) (err error) {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewClientLogger("sqledu-client")
	cfg, rest, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Err(err).Msg("error getting configs")
		return fmt.Errorf("load config: %w", err)
	}

	baseURL, err := adapter.NormalizeBaseURL(cfg.Adapter.HTTPAddress)
	if err != nil {
		return fmt.Errorf("backend address: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, cfg.App, log)
	if err != nil {
		log.Err(err).Msg("create local storage")
		return fmt.Errorf("open credential store: %w", err)
	}
	defer func() {
		err = errors.Join(err, storages.Close())
	}()

	terminal := notify.NewTerminal(os.Stderr)

	opts := []dispatcher.Option{dispatcher.WithLogger(log)}
	if cfg.App.RefreshCoalescing {
		opts = append(opts, dispatcher.WithRefreshCoalescing())
	}
	d := dispatcher.New(
		baseURL,
		adapter.NewHTTPTransport(cfg.Adapter, log),
		storages.Credentials,
		terminal,
		terminal,
		opts...,
	)

	endpoints := api.New(d)
	services := service.NewClientServices(endpoints, storages.Credentials, terminal, terminal, log)

	log.Info().Str("version", buildInfo.Version).Str("backend", baseURL).Msg("client started")

	return client.NewApp(services, endpoints, buildInfo, os.Stdout, log).Run(ctx, rest)
}
