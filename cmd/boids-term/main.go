package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/lao-tseu-is-alive/go-boids/internal/cli"
	"github.com/lao-tseu-is-alive/go-boids/internal/terminal"
)

func main() {
	// the terminal is busy drawing: logs are dropped unless -log-file is given
	cfg, logger, closeLog, err := cli.Setup(flag.CommandLine, os.Args[1:], io.Discard)
	if err != nil {
		log.Fatal(err)
	}

	d, err := terminal.Open(cfg, logger)
	if err != nil {
		_ = closeLog()
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = d.Run(ctx)
	stop()
	d.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("terminal loop failed: %v", err)
		_ = closeLog()
		log.Fatalf("terminal loop failed: %v", err)
	}
	logger.Infof("bye: %s", d.World().Stats())
	_ = closeLog()
}
