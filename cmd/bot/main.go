package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"mnist-kit/config"
	telegram "mnist-kit/internal/api"
	"mnist-kit/internal/container"
	"mnist-kit/internal/domain/port"
	"mnist-kit/internal/infrastructure/classifier"
	"mnist-kit/internal/infrastructure/imaging"
	"mnist-kit/internal/infrastructure/plotting"
	"mnist-kit/internal/infrastructure/storage"
	"mnist-kit/internal/infrastructure/table"
	"mnist-kit/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.Environment)

	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_TOKEN is required")
	}

	vectorizer, err := imaging.NewBackend(cfg.Vectorizer.Backend, cfg.Vectorizer.Resampler)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create vectorizer")
	}

	// Классификатор необязателен: без модели бот отдаёт только вектор
	var digits port.DigitClassifier
	if cfg.Model.Path != "" {
		onnx, err := classifier.NewONNX(classifier.Options{
			ModelPath:   cfg.Model.Path,
			LibraryPath: cfg.Model.LibraryPath,
			InputName:   cfg.Model.InputName,
			OutputName:  cfg.Model.OutputName,
		})
		if err != nil {
			log.Warn().Err(err).Str("model", cfg.Model.Path).Msg("classifier unavailable")
		} else {
			defer onnx.Close()
			digits = onnx
		}
	}

	appContainer := container.New(container.Deps{
		Users:      storage.NewMemoryUserRepository(),
		Vectorizer: vectorizer,
		Classifier: digits,
		Loader:     table.NewCSVLoader(),
		Renderer:   plotting.NewPNGRenderer(cfg.Plot.WidthInch, cfg.Plot.HeightInch),
	})

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	log.Info().Msg("bot is running")
	if err := bot.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
