package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/clinicadmin/internal/client/cli"
	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/config"
	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/client/storage"
	"github.com/dmitrijs2005/clinicadmin/internal/cryptox"
	"github.com/dmitrijs2005/clinicadmin/internal/filex"
	"github.com/dmitrijs2005/clinicadmin/internal/flagx"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+cli.Describe(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.LogBackend, cfg.LogLevel)

	dir, err := filex.EnsureDataDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	db, err := storage.OpenInDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("opening session database: %w", err)
	}
	defer db.Close()

	sess, err := session.NewStore(ctx, db, cfg.PayloadSecret)
	if err != nil {
		return err
	}

	pc, err := cryptox.NewPayloadCipher(cfg.PayloadSecret)
	if err != nil {
		return err
	}

	transport := client.NewHTTPClient(client.Options{
		BaseURL:     cfg.APIBaseURL,
		RosaBaseURL: cfg.RosaURL(),
		Timeout:     cfg.RequestTimeout,
		Session:     sess,
		Cipher:      pc,
		Logger:      log,
	})

	app := cli.NewApp(cli.Deps{
		Config:    cfg,
		Transport: transport,
		Session:   sess,
		Logger:    log,
	})
	return app.Run(ctx, flagx.StripArgs(args, config.ConfigFlags))
}
