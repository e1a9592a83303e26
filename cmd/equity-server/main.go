package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-equity/internal/config"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/service"
)

type CLI struct {
	Addr   string `help:"Listen address (overrides config)"`
	Config string `short:"c" help:"HCL config file" default:"holdem-equity.hcl"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		ctx.Exit(1)
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	budget, err := cfg.Simulation.ParseTimeBudget()
	if err != nil {
		logger.Error("Invalid config", "error", err)
		ctx.Exit(1)
	}

	defaults := equity.Config{
		Iterations: cfg.Simulation.Iterations,
		Workers:    cfg.Simulation.Workers,
		Confidence: cfg.Simulation.Confidence,
		TimeBudget: budget,
	}

	addr := cli.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	}

	srv := service.NewServer(addr, defaults, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Stop(shutdownCtx)
	}()

	if err := srv.Start(); err != nil {
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
}
