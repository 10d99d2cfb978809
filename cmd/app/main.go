package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/doxnav/internal"
	pkgconfig "github.com/starford/doxnav/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if docs := cmd.String("docs"); docs != "" {
		cfg.Docs.Path = docs
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func tree(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunTree(ctx, int(cmd.Int("depth")), cmd.Bool("targets"),
		internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func check(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunCheck(ctx, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func main() {
	cmd := &cli.Command{
		Name:   "doxnav",
		Usage:  "Serve, search and verify the navigation index of a generated Doxygen site",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "docs",
				Aliases: []string{"d"},
				Usage:   "HTML documentation directory (overrides docs.path)",
				Sources: cli.EnvVars("DOXNAV_DOCS"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve the navigation tools over MCP stdio",
				Action: mcp,
			},
			{
				Name:   "tree",
				Usage:  "Print the navigation tree",
				Action: tree,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Maximum depth to print (0 for everything)",
					},
					&cli.BoolFlag{
						Name:    "targets",
						Aliases: []string{"t"},
						Usage:   "Show target pages",
					},
				},
			},
			{
				Name:   "check",
				Usage:  "Verify the tree against its flat index and the pages on disk",
				Action: check,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, internal.ErrCheckFailed) {
			os.Exit(2)
		}
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
