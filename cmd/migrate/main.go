package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AlibekovAA/todo-api/internal/common/config"
	"github.com/AlibekovAA/todo-api/internal/common/db"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
)

func main() {
	target := flag.Int64("target", 0, "version to roll back to (down only)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-target N] up|status|down\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "migrate", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	migrator := db.NewMigrator(pool, log)
	ctx := context.Background()

	switch command {
	case "up":
		err = migrator.Up(ctx)
	case "status":
		err = migrator.Status(ctx)
	case "down":
		err = migrator.Down(ctx, *target)
	default:
		flag.Usage()
		pool.Close()
		os.Exit(2)
	}

	if err != nil {
		pool.Close()
		log.Fatalf("migrate %s failed: %v", command, err)
	}
}
