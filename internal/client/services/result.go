package services

import (
	"context"
	"errors"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/client"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

// fromEnvelope converts a response (or the error returned instead of one)
// into a Result, decoding data into T on success.
func fromEnvelope[T any](ctx context.Context, log logging.Logger, op, fallback string, env *client.Envelope, err error) models.Result[T] {
	if err != nil {
		return failure[T](ctx, log, op, fallback, err)
	}
	if !env.Success {
		return models.Fail[T](messageOr(env.Text(), fallback))
	}
	data, err := client.Decode[T](env)
	if err != nil {
		return failure[T](ctx, log, op, fallback, err)
	}
	return models.Ok(data, env.Text())
}

func failure[T any](ctx context.Context, log logging.Logger, op, fallback string, err error) models.Result[T] {
	if errors.Is(err, context.Canceled) {
		log.Debug(ctx, op+" canceled")
	} else {
		log.Warn(ctx, op+" failed", "error", err)
	}
	return models.Fail[T](messageOr(client.ServerMessage(err), fallback))
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
