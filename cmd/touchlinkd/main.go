package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tapware/touchlink/internal/bridge"
	"github.com/tapware/touchlink/internal/config"
	"github.com/tapware/touchlink/internal/logging"
	"github.com/tapware/touchlink/internal/observability"
	"github.com/tapware/touchlink/internal/server"
	"github.com/tapware/touchlink/internal/touchsrc"
	"github.com/tapware/touchlink/internal/transport"
)

func main() {
	if err := run(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "touchlinkd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/touchlink/touchlink.toml", "path to the TOML config")
	flag.Parse()

	logging.ConfigureRuntime("touchlinkd")
	observability.RegisterMetrics()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	tr, err := dialTransport(cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	bcfg := bridge.DefaultConfig()
	bcfg.PingInterval = cfg.PingInterval
	bcfg.Gesture = cfg.Gesture
	svc := bridge.NewService(bcfg, tr)

	src, err := touchsrc.Open(cfg.TouchDevice, svc.Samples())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 3)
	go func() { errc <- svc.Run(ctx) }()
	go func() { errc <- src.Run(ctx) }()
	go func() { errc <- server.New(svc, cfg.APIToken).Run(cfg.ListenAddr) }()

	log.Info().
		Str("listen", cfg.ListenAddr).
		Str("transport", string(cfg.Transport)).
		Str("touch_device", cfg.TouchDevice).
		Msg("touchlinkd up")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		return err
	}
}

func dialTransport(cfg config.Config) (transport.Transport, error) {
	switch cfg.Transport {
	case config.TransportWS:
		return transport.DialWS(cfg.WSURL)
	default:
		return transport.DialSerial(cfg.SerialDev, cfg.SerialBaud)
	}
}
