package main

import (
	"crypto/tls"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/kmaitland/testhub"
	"github.com/kmaitland/testhub/internal/apimachinery"
	"github.com/kmaitland/testhub/internal/session"
	"github.com/kmaitland/testhub/internal/storage"
)

func getGateway(
	c *cli.Context,
) (*apimachinery.Gateway, *storage.Store, error) {
	config, err := getClientConfig()
	if err != nil {
		return nil, nil, err
	}
	if address := c.String(flagServer); address != "" {
		config.APIAddress = address
	}

	store, err := storage.NewStore()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error locating session storage")
	}

	gateway := apimachinery.NewGateway(
		config.APIAddress,
		store,
		&terminalNotifier{},
		&http.Client{
			Timeout: config.RequestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: c.Bool(flagInsecure) || config.Insecure,
				},
			},
		},
	)
	if c.Bool(flagDebug) || config.Debug {
		gateway.Logger = zerolog.New(
			zerolog.ConsoleWriter{Out: os.Stderr},
		).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return gateway, store, nil
}

func getClient(c *cli.Context) (testhub.Client, error) {
	gateway, _, err := getGateway(c)
	if err != nil {
		return nil, errors.Wrap(err, "error getting testhub client")
	}
	return testhub.NewClient(gateway), nil
}

func getSession(c *cli.Context) (*session.Session, error) {
	gateway, store, err := getGateway(c)
	if err != nil {
		return nil, errors.Wrap(err, "error getting testhub client")
	}
	return session.New(
		store,
		testhub.NewClient(gateway).Auth(),
		gateway.Notifier,
	), nil
}
