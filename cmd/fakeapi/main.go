// Command fakeapi serves an in-memory copy of the file-storage REST API for
// local development of the terminal client.
package main

import (
	"context"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/buildinfo"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/common"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/fakeapi"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/fakeapi/config"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogFormat, os.Stdout, true)
	if err != nil {
		log.Fatalf("%v", err)
	}

	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		secret = []byte(hex.EncodeToString(common.GenerateRandByteArray(32)))
		logger.Warn(context.Background(), "no -secret given, tokens will not survive a restart")
	}

	srv := fakeapi.NewServer(secret, cfg.TokenTTL, logger)
	srv.OnResetToken = func(email, token string) {
		logger.Info(context.Background(), "password reset requested", "email", email, "token", token)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := srv.Run(ctx, cfg.Addr); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
