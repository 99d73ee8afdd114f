package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pjessen/partywords/internal/api"
	"github.com/pjessen/partywords/internal/factory"
	"github.com/pjessen/partywords/internal/services/party"
	redisstorage "github.com/pjessen/partywords/internal/storage/redis"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServer(cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Listen port (env: PORT)")
	return cmd
}

func runServer(cfg *Config) error {
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:           logger,
		StorageType:      cfg.StorageType,
		PartyGracePeriod: cfg.GracePeriod,
	}
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		PartyRegistry:   app.PartyRegistry,
		PartyController: app.PartyController,
		WordsService:    app.WordsService,
		WSHandler:       app.WSHandler,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Sweep empty parties in the background
	go app.PartyRegistry.RunJanitor(ctx, party.DefaultJanitorInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
	return nil
}
