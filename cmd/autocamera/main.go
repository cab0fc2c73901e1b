package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivlev/autocamera/internal/config"
	"github.com/ivlev/autocamera/internal/director"
	"github.com/ivlev/autocamera/internal/engine"
	"github.com/ivlev/autocamera/internal/logging"
	"github.com/ivlev/autocamera/internal/system"
)

// Задается через -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

func main() {
	routePtr := flag.String("route", "", "Путь к маршруту (по умолчанию: самый свежий *.yaml в папке маршрутов)")
	batchPtr := flag.String("batch", "", "Обработать все маршруты из этой папки")
	outputPtr := flag.String("output", "", "Путь к снимку секвенции (если пусто, генерируется в output/; с -batch игнорируется)")
	configPtr := flag.String("config", "", "YAML-файл конфигурации (необязательно)")
	tickPtr := flag.Int("tick-resolution", 0, "Тиков в секунду для маршрутов без своей частоты")
	displayPtr := flag.Int("display-rate", 0, "Кадров в секунду для маршрутов без своей частоты")
	interpPtr := flag.String("interpolation", "", "Интерполяция ключей по умолчанию: cubic, linear, constant")
	bakePtr := flag.Bool("bake", false, "Записать покадровые положения камер рядом со снимком")
	previewPtr := flag.Bool("preview", false, "Записать PNG с видом траекторий сверху рядом со снимком")
	workersPtr := flag.Int("workers", 0, "Потоки для -batch")
	logLevelPtr := flag.String("log-level", "", "Уровень логов: debug, info, warn, error")
	statsPtr := flag.Bool("stats", false, "Вывести отчет о производительности")

	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Флаги перекрывают файл и окружение, только если заданы явно
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "route":
			cfg.RoutePath = *routePtr
		case "batch":
			cfg.BatchDir = *batchPtr
		case "output":
			cfg.OutputPath = *outputPtr
		case "tick-resolution":
			cfg.TickResolution = *tickPtr
		case "display-rate":
			cfg.DisplayRate = *displayPtr
		case "interpolation":
			cfg.Interpolation = *interpPtr
		case "bake":
			cfg.Bake = *bakePtr
		case "preview":
			cfg.Preview = *previewPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "log-level":
			cfg.LogLevel = *logLevelPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	cfg.BuildVersion = buildVersion

	logger := logging.New(nil, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Увеличиваем лимит открытых файлов для пакетной обработки
	system.InitResourceLimits(logger, 2048)
	if err := system.EnsureDirs(cfg.RoutesDir, cfg.OutputDir); err != nil {
		logger.Fatal().Err(err).Msg("failed to create working directories")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := director.NewDirector(logging.NewSink(logger))
	project := engine.NewProject(cfg, d, logger)

	startTime := time.Now()
	var reports []*engine.Report

	if cfg.BatchDir != "" {
		paths, err := director.ListRoutes(cfg.BatchDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to list routes")
		}
		if len(paths) == 0 {
			logger.Fatal().Str("dir", cfg.BatchDir).Msg("no route files found")
		}
		fmt.Printf("[*] Пакет: %d маршрутов, %d потоков\n", len(paths), cfg.Workers)

		var batchErr error
		reports, batchErr = project.RunBatch(ctx, paths)
		if batchErr != nil {
			fmt.Printf("[!] Часть маршрутов не обработана: %v\n", batchErr)
		}
	} else {
		routePath := cfg.RoutePath
		if routePath == "" {
			latest, err := director.FindLatestRoute(cfg.RoutesDir)
			if err != nil {
				logger.Fatal().Err(err).Msgf("put a route file into %s", cfg.RoutesDir)
			}
			routePath = latest
			fmt.Printf("[*] Выбран маршрут: %s\n", routePath)
		}

		report, err := project.Run(ctx, routePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("route failed")
		}
		reports = append(reports, report)
	}

	done := printReports(os.Stdout, reports)

	if cfg.ShowStats {
		printStats(cfg, reports, time.Since(startTime))
	}

	if done < len(reports) {
		os.Exit(1)
	}
	fmt.Printf("[+++] Успех! Секвенций: %d/%d\n", done, len(reports))
}

// printReports печатает итог по каждому маршруту и возвращает число успешных
func printReports(w io.Writer, reports []*engine.Report) int {
	done := 0
	for _, r := range reports {
		if r == nil {
			continue
		}
		done++
		if r.Partial != nil {
			fmt.Fprintf(w, "[!] %s: записано без части каналов: %v\n", r.Sequence, r.Partial)
		}
		fmt.Fprintf(w, "[+] %s: камер %d, ключей %d -> %s\n", r.Sequence, r.Cameras, r.KeysWritten, r.SnapshotPath)
		if r.BakePath != "" {
			fmt.Fprintf(w, "[+] Запекание: %s\n", r.BakePath)
		}
		if r.PreviewPath != "" {
			fmt.Fprintf(w, "[+] Превью: %s\n", r.PreviewPath)
		}
	}
	return done
}

func printStats(cfg *config.Config, reports []*engine.Report, total time.Duration) {
	var keys, cameras int
	var busy time.Duration
	for _, r := range reports {
		if r == nil {
			continue
		}
		keys += r.KeysWritten
		cameras += r.Cameras
		busy += r.Duration
	}

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Route Time (sum): %.3fs\n"+
			"Routes: %d | Cameras: %d | Keys: %d\n"+
			"Keys/s: %.0f\n"+
			"----------------------------\n",
		cfg.BuildVersion, total.Seconds(), busy.Seconds(), len(reports), cameras, keys,
		float64(keys)/max(total.Seconds(), 1e-9),
	)
}
