// Package mcp parses mcp command flags and runs the stdio MCP server.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/fateforge/internal/app"
	forgemcp "github.com/louisbranch/fateforge/internal/mcp"
	"github.com/louisbranch/fateforge/internal/platform/config"
	"github.com/louisbranch/fateforge/internal/platform/otel"
)

// Config holds mcp command configuration.
type Config struct {
	app.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the attempt audit database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves MCP tools over stdio until the context is canceled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
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

	return forgemcp.Run(ctx, svc)
}
