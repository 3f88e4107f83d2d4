package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/folio/internal"
	pkgconfig "github.com/starford/folio/pkg/config"
)

type runFunc func(ctx context.Context, opts ...internal.Option) error

func withConfig(fn runFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")

		cfg := internal.NewDefaultConfig()
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
		}

		if err := fn(ctx, opts...); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}

		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "folio",
		Usage:  "Portfolio site backend: curated catalog merged with stored records, contact inbox, admin API",
		Action: withConfig(internal.Run),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default)",
				Action: withConfig(internal.Run),
			},
			{
				Name:   "seed",
				Usage:  "Create the admin user and import the content directory",
				Action: withConfig(internal.RunSeed),
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: withConfig(internal.RunMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
