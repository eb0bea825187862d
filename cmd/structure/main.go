package main

import (
	"fmt"
	"os"

	"github.com/structuresh/structure/internal/cli"
	"github.com/structuresh/structure/internal/config"
	"github.com/structuresh/structure/internal/logging"
)

// version is set via ldflags at build time: -ldflags "-X main.version=x.y.z"
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unreadable %s: %v\n", config.ConfigPath(), err)
		cfg = config.DefaultConfig()
	}

	logger, err := logging.New(cfg.Debug, version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer func() { _ = logger.Sync() }()

	c := cli.New(version)
	c.Config = cfg
	c.Logger = logger
	c.Exit = func(code int) {
		_ = logger.Sync()
		os.Exit(code)
	}
	c.Run()
}
