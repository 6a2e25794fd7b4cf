// Command client is the terminal client for the file-storage service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/buildinfo"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/cli"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
