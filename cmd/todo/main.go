package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/todo-api/internal/common/bootstrap"
	srv "github.com/AlibekovAA/todo-api/internal/common/server"
)

func main() {
	app, err := bootstrap.NewApp("todo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	server := srv.New(app.Config.HTTPPort, app.Handler())

	srv.Run(server, app.Log, "todo", func(ctx context.Context) error {
		app.Log.Info("todo service: closing database pool")
		app.Pool.Close()
		return nil
	})
}
