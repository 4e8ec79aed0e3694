package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config настройки внешних оболочек: CLI и бота.
type Config struct {
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	Environment string `env:"ENVIRONMENT, default=prod"`

	Vectorizer VectorizerConfig
	Plot       PlotConfig
	Model      ModelConfig

	TelegramToken string `env:"TELEGRAM_TOKEN"`
}

// VectorizerConfig выбор реализации и метода масштабирования.
type VectorizerConfig struct {
	Backend   string `env:"VECTORIZER_BACKEND, default=native"`
	Resampler string `env:"RESAMPLER, default=bicubic"`
}

// PlotConfig размер диаграмм и каталог для PNG.
type PlotConfig struct {
	Dir        string  `env:"PLOT_DIR"`
	WidthInch  float64 `env:"PLOT_WIDTH_INCH, default=8"`
	HeightInch float64 `env:"PLOT_HEIGHT_INCH, default=5"`
}

// ModelConfig параметры ONNX-классификатора. Пустой Path отключает классификатор.
type ModelConfig struct {
	Path        string `env:"MODEL_PATH"`
	LibraryPath string `env:"ONNX_LIBRARY_PATH"`
	InputName   string `env:"MODEL_INPUT_NAME, default=input"`
	OutputName  string `env:"MODEL_OUTPUT_NAME, default=output"`
}

func Load(ctx context.Context) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.Plot.WidthInch <= 0 || cfg.Plot.HeightInch <= 0 {
		return nil, fmt.Errorf("plot size must be positive, got %gx%g", cfg.Plot.WidthInch, cfg.Plot.HeightInch)
	}

	return &cfg, nil
}
