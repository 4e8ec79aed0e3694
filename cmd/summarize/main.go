// Command summarize показывает диаграммы точности по output.csv и печатает лучшую строку.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"mnist-kit/config"
	app "mnist-kit/internal/application"
	"mnist-kit/internal/domain/port"
	"mnist-kit/internal/infrastructure/plotting"
	"mnist-kit/internal/infrastructure/table"
	"mnist-kit/internal/infrastructure/window"
	"mnist-kit/internal/logger"
)

// resultsFile ищется в текущем каталоге.
const resultsFile = "output.csv"

func main() {
	if len(os.Args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: summarize (reads "+resultsFile+" from the working directory)")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)

	renderer := plotting.NewCachedRenderer(plotting.NewPNGRenderer(cfg.Plot.WidthInch, cfg.Plot.HeightInch))

	var viewer port.PlotViewer = window.NewViewer(renderer)
	if cfg.Plot.Dir != "" {
		viewer = &plotting.ArchiveViewer{Dir: cfg.Plot.Dir, Renderer: renderer, Next: viewer}
	}

	out, err := app.NewSummaryService(table.NewCSVLoader(), viewer).Summarize(ctx, resultsFile)
	if err != nil {
		log.Error().Stack().Err(err).Str("file", resultsFile).Msg("failed to summarize results")
		os.Exit(1)
	}

	if err := app.WriteReport(os.Stdout, out.Best); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
}
