package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mamadbah2/dairy/internal/cli"
	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository/mongodb"
	reportingsvc "github.com/mamadbah2/dairy/internal/service/reporting"
	"github.com/mamadbah2/dairy/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, log.Named("repo.mongodb"))
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(ctx) }()

	root := cli.NewRootCmd(cli.Options{
		Reports: reportingsvc.NewService(repo, log.Named("svc.reporting")),
		Output:  os.Stdout,
	})
	return root.ExecuteContext(ctx)
}
