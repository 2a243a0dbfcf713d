package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/idilsaglam/toyboard/internal/config"
	"github.com/idilsaglam/toyboard/internal/logging"
	"github.com/idilsaglam/toyboard/internal/server"
	"github.com/idilsaglam/toyboard/internal/store"
	"github.com/idilsaglam/toyboard/internal/store/jsonstore"
	"github.com/idilsaglam/toyboard/internal/store/sqlite"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve /toys from a local db.json or sqlite file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "listen address (default localhost:3000)"},
		&cli.StringFlag{Name: "driver", Usage: "storage driver: json or sqlite"},
		&cli.StringFlag{Name: "db", Usage: "storage file path"},
	},
	Action: func(c *cli.Context) error {
		cfg := configFrom(c)
		if c.IsSet("addr") {
			cfg.Server.Addr = c.String("addr")
		}
		if c.IsSet("driver") {
			cfg.Storage.Driver = c.String("driver")
		}
		if c.IsSet("db") {
			cfg.Storage.Path = c.String("db")
		}

		log := logging.New(cfg.Env, os.Stdout)
		st, err := openStore(cfg.Storage)
		if err != nil {
			return cli.Exit(err.Error(), exitError)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(st, log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.Server.Addr) }()

		select {
		case err := <-errCh:
			if err != nil {
				return cli.Exit("serve: "+err.Error(), exitError)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return cli.Exit("shutdown: "+err.Error(), exitError)
		}
		return nil
	},
}

func openStore(cfg config.Storage) (store.Store, error) {
	switch cfg.Driver {
	case "json", "":
		return jsonstore.Open(cfg.Path)
	case "sqlite":
		return sqlite.New(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
