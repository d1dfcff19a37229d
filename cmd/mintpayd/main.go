package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/cashubtc/mintpayd/bridge"
	"github.com/cashubtc/mintpayd/config"
	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/lnd"
	"github.com/cashubtc/mintpayd/money"
	"github.com/cashubtc/mintpayd/rpc"

	_ "github.com/cashubtc/mintpayd/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info("Received signal, shutting down")
		cancel()
	}()

	app := &cli.Command{
		Name:  "mintpayd",
		Usage: "Lightning payment backend daemon for a Cashu mint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start the mintpayd daemon",
				Action: func(ctx context.Context, c *cli.Command) error {
					return start(ctx, c.String("config"))
				},
			},
			{
				Name:  "help",
				Usage: "Show help",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := cli.ShowAppHelp(cmd); err != nil {
						return err
					}

					return nil
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func start(ctx context.Context, configPath string) error {
	cfg, err := config.Load(afero.NewOsFs(), configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	network, err := cfg.BitcoinNetwork()
	if err != nil {
		return err
	}

	node, err := lnd.New(
		lnd.WithEndpoint(cfg.Node.LndEndpoint),
		lnd.WithMacaroonFilePath(cfg.Node.MacaroonPath),
		lnd.WithTLSCertFilePath(cfg.Node.TLSCertPath),
		lnd.WithNetwork(network),
	)
	if err != nil {
		return fmt.Errorf("could not connect to lnd: %w", err)
	}

	b, err := bridge.New(node, bridge.Config{
		FeeReserve: lightning.FeeReserve{
			MinFeeReserve:     money.Amount(cfg.Fees.MinFeeReserve),
			PercentFeeReserve: cfg.Fees.PercentFeeReserve,
		},
		Network:      network,
		PollTimeout:  time.Duration(cfg.Poller.TimeoutMs) * time.Millisecond,
		PollInterval: time.Duration(cfg.Poller.IntervalMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	if err := b.Start(ctx); err != nil {
		return fmt.Errorf("could not start payment bridge: %w", err)
	}

	// Stop the bridge when the process context is cancelled. The management
	// server below keeps its own context so that StopManagementService can
	// take it down independently.
	go func() {
		<-ctx.Done()
		if err := b.Stop(); err != nil {
			log.Errorf("Could not stop payment bridge: %v", err)
		}
	}()

	log.WithField("addr", cfg.ListenAddr()).Info("Starting management API")

	handler := rpc.NewHandler(b, node)
	if err := rpc.Serve(b.ManagementContext(), cfg.ListenAddr(), handler); err != nil {
		// The bridge keeps the node and event loop running; tear it down
		// before reporting the failure.
		if stopErr := b.Stop(); stopErr != nil {
			log.Errorf("Could not stop payment bridge: %v", stopErr)
		}

		return fmt.Errorf("management API: %w", err)
	}

	return nil
}
