package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkoval-dev/nightraid/internal/ai"
	"github.com/mkoval-dev/nightraid/internal/config"
	"github.com/mkoval-dev/nightraid/internal/game/combat"
	"github.com/mkoval-dev/nightraid/internal/network"
	"github.com/mkoval-dev/nightraid/internal/spawn"
)

const ConfigPath = "config/nightraid.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("NIGHTRAID_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("nightraid host starting",
		"log_level", cfg.LogLevel,
		"is_host", cfg.IsHost,
		"tick_rate", cfg.Frame.TickRate)

	reconciler := combat.NewReconciler(cfg.IsHost)
	manager := spawn.NewManager(cfg, reconciler)

	hub := network.NewHub(
		time.Duration(cfg.Network.WriteTimeoutMs)*time.Millisecond,
		cfg.Network.SendBuffer,
	)
	hub.SetDamageHandler(func(peerID, actionID string, p network.DamageEnemyPayload) {
		if ai.IsDebugEnabled() {
			slog.Debug("damage report received",
				"peer", peerID,
				"actionId", actionID,
				"enemy", p.EnemyID,
				"damage", p.Damage,
				"headshot", p.IsHeadshot)
		}
		manager.ApplyHostDamage(p.EnemyID, p.Damage)
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return manager.Run(ctx, cfg.Frame.TickRate)
	})

	g.Go(func() error {
		addr := fmt.Sprintf("%s:%d", cfg.Network.BindAddress, cfg.Network.Port)
		return hub.Run(ctx, addr)
	})

	return g.Wait()
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
