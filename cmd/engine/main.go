package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxelcore/internal/api"
	"github.com/annel0/voxelcore/internal/app"
	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "путь к конфигурации (YAML или TOML)")
	frames := flag.Int("frames", -1, "ограничить число кадров (переопределяет engine.max_frames)")
	readOnly := flag.Bool("read-only", false, "запретить запись блоков через API")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *frames >= 0 {
		cfg.Engine.MaxFrames = *frames
	}

	logging.Configure(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err := logging.InitDefaultLogger("engine"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Warn("OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	engine, err := app.New(cfg, nil)
	if err != nil {
		logging.Error("❌ Ошибка создания движка: %v", err)
		os.Exit(1)
	}
	logging.Info("🧱 Движок %s: радиус %d, seed %d", engine.ID(), cfg.World.LoadRadius, cfg.Generator.Seed)

	exporter := observability.NewMetricsExporter(engine, engine.Registry(), engine.Registry())
	exporter.StartHTTP(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))

	rest := api.NewRestServer(api.Config{
		Port:     fmt.Sprintf(":%d", cfg.Server.GetAPIPort()),
		Engine:   engine,
		Gatherer: engine.Registry(),
		Registry: engine.Registry(),
		ReadOnly: *readOnly,
	})
	go func() {
		if err := rest.Start(); err != nil {
			logging.Error("❌ Ошибка REST API: %v", err)
			stop()
		}
	}()

	runErr := engine.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logging.Error("❌ Движок завершился с ошибкой: %v", runErr)
	}

	logging.Info("🛑 Остановка...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки движка: %v", err)
	}
	if err := rest.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки REST API: %v", err)
	}
	if err := exporter.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки экспортера метрик: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки OpenTelemetry: %v", err)
	}
	logging.Info("✅ Движок остановлен, кадров: %d", engine.Stats().Frame)
}
