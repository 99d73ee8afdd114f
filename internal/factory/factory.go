package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/pjessen/partywords/internal/dependencies/clock"
	"github.com/pjessen/partywords/internal/dependencies/random"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/auth"
	"github.com/pjessen/partywords/internal/services/board"
	"github.com/pjessen/partywords/internal/services/game"
	"github.com/pjessen/partywords/internal/services/party"
	"github.com/pjessen/partywords/internal/services/timer"
	"github.com/pjessen/partywords/internal/services/words"
	"github.com/pjessen/partywords/internal/storage"
	"github.com/pjessen/partywords/internal/storage/memory"
	redisstorage "github.com/pjessen/partywords/internal/storage/redis"
	"github.com/pjessen/partywords/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService    *words.Service
	BoardGenerator  *board.Generator
	PartyRegistry   *party.Registry
	PartyController *party.Controller
	GameController  *game.Controller
	TimerScheduler  *timer.Scheduler
	AuthService     *auth.Service
	HubManager      *ws.HubManager
	WSHandler       *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PartyGracePeriod overrides how long empty parties linger (optional)
	PartyGracePeriod time.Duration
	// TimerInterval overrides the countdown poll cadence (optional)
	TimerInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// NewWithDependencies creates an App with injected dependencies, used in
// tests to control time and randomness
func NewWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return newWithDependencies(store, clk, rnd, cfg, logger)
}

func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	wordsService := words.New(store, clk, logger)
	boardGenerator := board.NewGenerator(wordsService, rnd, logger)

	registry := party.NewRegistry(clk, rnd, logger)
	if cfg.PartyGracePeriod > 0 {
		registry.SetGracePeriod(cfg.PartyGracePeriod)
	}

	scheduler := timer.NewScheduler(cfg.TimerInterval, logger)
	partyController := party.NewController(registry, logger)
	gameController := game.NewController(registry, boardGenerator, scheduler, clk, rnd, logger)
	authService := auth.NewService(store, clk, logger)
	hubManager := ws.NewHubManager(logger)
	wsHandler := ws.NewHandler(authService, partyController, gameController, registry, hubManager, logger)

	// Each countdown poll updates the party under its guard and then
	// fans the new state out to the room
	scheduler.SetTickFunc(func(code model.PartyCode) bool {
		alive := gameController.TickTimer(code)
		wsHandler.BroadcastState(code)
		return alive
	})

	// Deleting a party tears down its countdown and its room
	registry.SetOnDelete(func(code model.PartyCode) {
		scheduler.Stop(code)
		hubManager.RemoveHub(code)
	})

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		WordsService:    wordsService,
		BoardGenerator:  boardGenerator,
		PartyRegistry:   registry,
		PartyController: partyController,
		GameController:  gameController,
		TimerScheduler:  scheduler,
		AuthService:     authService,
		HubManager:      hubManager,
		WSHandler:       wsHandler,
	}
}

// Close releases background resources
func (a *App) Close() {
	a.TimerScheduler.StopAll()
	a.HubManager.CloseAll()
}
