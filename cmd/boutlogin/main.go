package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boutgo/server/internal/config"
	"github.com/boutgo/server/internal/login"
	"github.com/boutgo/server/internal/persist"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("BOUTGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	accountRepo := persist.NewAccountRepo(db)
	roomRepo := persist.NewRoomRepo(db)

	loginServer, err := login.NewServer(cfg.Login.BindAddress, accountRepo, cfg.Login.AutoCreateAccounts, log)
	if err != nil {
		return fmt.Errorf("login server: %w", err)
	}
	go loginServer.Serve(context.Background())
	log.Info("登入伺服器啟動", zap.String("addr", loginServer.Addr().String()))

	recorder, err := login.NewPortRecorder(cfg.Login.UDPBindAddress, roomRepo, log)
	if err != nil {
		return fmt.Errorf("port recorder: %w", err)
	}
	go recorder.Serve(context.Background())
	log.Info("房間埠口記錄器啟動", zap.String("addr", cfg.Login.UDPBindAddress))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-shutdownCh
	log.Info("收到關閉信號", zap.String("signal", sig.String()))
	loginServer.Shutdown()
	recorder.Close()
	log.Info("伺服器已停止")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
