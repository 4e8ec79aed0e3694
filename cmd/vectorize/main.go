// Command vectorize печатает вектор MNIST (784 значения) для одного изображения.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"mnist-kit/config"
	app "mnist-kit/internal/application"
	"mnist-kit/internal/infrastructure/imaging"
	"mnist-kit/internal/logger"
)

const usage = "usage: vectorize <image>"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	path := os.Args[1]

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)

	vectorizer, err := imaging.NewBackend(cfg.Vectorizer.Backend, cfg.Vectorizer.Resampler)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create vectorizer")
	}

	vec, err := app.NewVectorizeService(vectorizer, nil).VectorizeFile(ctx, path)
	if err != nil {
		log.Error().Stack().Err(err).Str("path", path).Msg("failed to vectorize image")
		os.Exit(1)
	}

	data, err := vec.MarshalJSON()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode vector")
	}
	if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
		log.Fatal().Err(err).Msg("failed to write vector")
	}
}
