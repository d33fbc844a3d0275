package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/quantum-tictactoe-backend/internal"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	logger.Info("starting quantum tic-tac-toe server",
		"httpPort", conf.HTTPPort,
		"socketPort", conf.SocketPort,
		"redis", conf.Redis.GetRedisAddr(),
		"sqlite", conf.SQLiteStoragePath,
		"snapshotTTL", conf.SnapshotTTL,
		"reconnectTimeout", conf.ReconnectTimeout,
	)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config. CONFIG_PATH overrides the config.yml of the working directory.
func initConfig() *config.Config {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

const serviceName = "quantum-tictactoe"

// initialize logger. Every record carries the service name, debug records carry the source line.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)

	return logger
}
