// Command seed resets the plants table to the demo catalog. With -clear it
// only empties the table.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"plant-catalog/config"
	"plant-catalog/logger"
	"plant-catalog/store"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("seed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	clearOnly := flag.Bool("clear", false, "delete every plant without inserting the demo catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogFormat); err != nil {
		return err
	}
	_ = logger.SetLevelString(cfg.LogLevel)
	log := logger.Named("seed")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	if *clearOnly {
		n, err := st.DeleteAllPlants(ctx)
		if err != nil {
			return err
		}
		log.Info(ctx, "plants cleared", logger.Int64("deleted", n))
		return nil
	}

	rows, err := st.Seed(ctx)
	if err != nil {
		return err
	}
	for _, p := range rows {
		log.Info(ctx, "seeded plant",
			logger.Int64("id", p.ID),
			logger.String("name", p.Name),
			logger.String("image", p.Image.String),
			logger.Float64("price", p.Price.Float64),
		)
	}
	return nil
}
