// Package server parses server command flags and runs the HTTP API.
package server

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/fateforge/internal/app"
	httpserver "github.com/louisbranch/fateforge/internal/server"
	"github.com/louisbranch/fateforge/internal/platform/config"
	"github.com/louisbranch/fateforge/internal/platform/otel"
)

// Config holds server command configuration.
type Config struct {
	Addr string `env:"FATEFORGE_HTTP_ADDR" envDefault:":8080"`
	app.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the attempt audit database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the HTTP API and serves until the context is canceled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "server")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	svc, closeStorage, err := app.BuildService(cfg.Config)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Addr)
	return httpserver.New(svc).ListenAndServe(ctx, cfg.Addr)
}
