package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	"github.com/sooomo/bst/internal/applog"
	"github.com/sooomo/bst/internal/config"
	"github.com/sooomo/bst/net"
	"github.com/sooomo/bst/scenario"
	"github.com/urfave/cli/v3"
)

var Version = "dev"

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "bst",
		Usage:     "generic binary search tree: scenario runner and http front end",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		// 退出码由 main 处理
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "location of the toml config file; flags override values set in it",
				OnlyOnce: true,
				Sources:  cli.EnvVars("BST_CONFIG"),
			},
			&cli.BoolFlag{
				Name:     "clean",
				Usage:    "ignore every config file",
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name:     "log-level",
				Usage:    "trace, debug, info, warn or error",
				OnlyOnce: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "run the fixed tree scenarios and print pass/fail",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "workers",
						Usage:    "size of the scenario worker pool",
						OnlyOnce: true,
					},
				},
				Action: runDemo,
			},
			{
				Name:  "serve",
				Usage: "host trees over http",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "listen-addr",
						Usage:    "address to listen on, e.g. 127.0.0.1:8080",
						OnlyOnce: true,
					},
				},
				Action: runServe,
			},
		},
	}
}

// loadConfig 读取配置文件，再用命令行参数覆盖
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := ""
	if !cmd.Bool("clean") {
		var err error
		path, err = config.Search(cmd.String("config"), config.DefaultLookupPaths())
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("listen-addr") {
		cfg.Server.ListenAddr = cmd.String("listen-addr")
	}
	if cmd.IsSet("workers") {
		cfg.Demo.Workers = cmd.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cli.Command, cfg *config.Config) zerolog.Logger {
	level, _ := applog.ParseLevel(cfg.Log.Level)
	return applog.NewLogger(level, cmd.Root().ErrWriter)
}

func runDemo(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := applog.WithScope(newLogger(cmd, cfg), "DEMO")

	pool, err := ants.NewPool(cfg.Demo.Workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	results, err := scenario.Run(ctx, pool, logger, scenario.All())
	if err != nil {
		return err
	}
	scenario.Print(cmd.Root().Writer, results)
	if !scenario.AllPassed(results) {
		return cli.Exit("some scenarios failed", 1)
	}
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	server := net.NewServer(cfg.Server, logger)
	return server.Run(ctx)
}
