package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"troffee-auction-engine/internal/adapters/broadcaster"
	"troffee-auction-engine/internal/adapters/db"
	"troffee-auction-engine/internal/adapters/lock"
	"troffee-auction-engine/internal/adapters/memory"
	"troffee-auction-engine/internal/adapters/redis"
	"troffee-auction-engine/internal/adapters/scheduler"
	"troffee-auction-engine/internal/adapters/ws"
	"troffee-auction-engine/internal/app"
	"troffee-auction-engine/internal/config"
	"troffee-auction-engine/internal/ports/outbound"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Troffee Auction Engine...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, closeStore := openStore(ctx, cfg)
	defer closeStore()

	// Create Redis client
	redisClient := redis.NewClient(cfg)
	defer redisClient.Close()
	if err := redis.PingRedis(ctx, redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	// Create Redis broadcaster
	redisBroadcaster := broadcaster.NewBroadcaster(broadcaster.RedisBroadcasterParams{
		RedisClient: redisClient,
		Logger:      log.Logger,
	})
	log.Info().Msg("Redis broadcaster initialized")

	var expiryIndex outbound.ExpiryIndex
	switch cfg.Scheduler.ExpiryIndex {
	case config.ExpiryIndexStore:
		expiryIndex = scheduler.NewStoreExpiryIndex(repos.AuctionRepository)
	default:
		// the store sweep closes auctions the Redis index missed or lost
		expiryIndex = scheduler.NewSweepingExpiryIndex(scheduler.SweepingExpiryIndexParams{
			Index: redis.NewExpiryIndex(redis.ExpiryIndexParams{
				RedisClient: redisClient,
				Logger:      log.Logger,
			}),
			Auctions:      repos.AuctionRepository,
			SweepInterval: cfg.Scheduler.SweepInterval,
			Logger:        log.Logger,
		})
	}

	locker := lock.NewKeyedLocker(lock.KeyedLockerParams{
		Timeout: cfg.Bidding.LockTimeout,
		Logger:  log.Logger,
	})

	events := app.NewEventDispatcher(app.EventDispatcherParams{
		Notifier: broadcaster.NewNotifier(redisBroadcaster),
		Catalog:  repos.ProductCatalog,
		Workers:  cfg.Notify.Workers,
		Logger:   log.Logger,
	})

	// Create business services
	auctionService := app.NewAuctionService(app.AuctionServiceParams{
		AuctionRepo: repos.AuctionRepository,
		Transactor:  repos.Transactor,
		Catalog:     repos.ProductCatalog,
		ExpiryIndex: expiryIndex,
		Locker:      locker,
		Events:      events,
		Durations:   cfg.Bidding.Durations,
		Logger:      log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		AuctionRepo:  repos.AuctionRepository,
		BidRepo:      repos.BidRepository,
		Transactor:   repos.Transactor,
		ExpiryIndex:  expiryIndex,
		Locker:       locker,
		Events:       events,
		MinIncrement: cfg.Bidding.MinIncrement,
		Logger:       log.Logger,
	})

	log.Info().Msg("Business services initialized")

	auctionScheduler := scheduler.NewAuctionScheduler(scheduler.AuctionSchedulerParams{
		ExpiryIndex: expiryIndex,
		Closer:      auctionService,
		Interval:    cfg.Scheduler.Interval,
		BatchSize:   cfg.Scheduler.BatchSize,
		Workers:     cfg.Scheduler.Workers,
		Logger:      log.Logger,
	})
	auctionScheduler.Start()
	log.Info().Str("expiry_index", cfg.Scheduler.ExpiryIndex).Msg("Auction scheduler started")

	server := ws.NewServer(ws.ServerParams{
		Config:         cfg,
		AuctionService: auctionService,
		BidService:     bidService,
		Broadcaster:    redisBroadcaster,
		Logger:         log.Logger,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// nothing may submit notifications once the dispatcher is closed
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping server")
	}
	auctionScheduler.Stop()
	log.Info().Msg("Auction scheduler stopped")

	events.Close()
	if err := redisBroadcaster.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing broadcaster")
	}

	log.Info().Msg("Graceful shutdown completed")
}

// openStore builds the repositories for the configured driver
func openStore(ctx context.Context, cfg *config.Config) (db.Repositories, func()) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory store; state is lost on restart")
		store := memory.NewStore()
		return db.Repositories{
			AuctionRepository: store,
			BidRepository:     store,
			ProductCatalog:    memory.NewCatalog(),
			Transactor:        store,
		}, func() {}
	}

	dbConn, err := db.NewConnection(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database connection established")

	closeStore := func() {
		if err := dbConn.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}
	return db.NewRepositoryFactory(dbConn).GetAllRepositories(), closeStore
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}
