package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-ranking/internal/config"
	infraCache "bookstore-ranking/internal/infrastructure/cache"
	"bookstore-ranking/internal/infrastructure/database"
	"bookstore-ranking/pkg/cache"

	bookHandler "bookstore-ranking/internal/domains/book/handler"
	bookRepo "bookstore-ranking/internal/domains/book/repository"
	bookService "bookstore-ranking/internal/domains/book/service"
	ingestHandler "bookstore-ranking/internal/domains/ingestion/handler"
	ingestService "bookstore-ranking/internal/domains/ingestion/service"
	rankingHandler "bookstore-ranking/internal/domains/ranking/handler"
	rankingRepo "bookstore-ranking/internal/domains/ranking/repository"
	rankingService "bookstore-ranking/internal/domains/ranking/service"
	saleRepo "bookstore-ranking/internal/domains/sale/repository"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container owns every long-lived dependency of the process.
// The store handle is created once here and injected downwards; nothing
// below reaches for a global connection.
type Container struct {
	// INFRASTRUCTURE LAYER
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// REPOSITORY LAYER
	BookRepo    bookRepo.RepositoryInterface
	SaleRepo    saleRepo.RepositoryInterface
	RankingRepo rankingRepo.RepositoryInterface

	// SERVICE LAYER
	BookService      bookService.ServiceInterface
	IngestionService ingestService.ServiceInterface
	RankingService   rankingService.ServiceInterface

	// HANDLER LAYER
	BookHandler    *bookHandler.Handler
	UploadHandler  *ingestHandler.Handler
	RankingHandler *rankingHandler.Handler
}

// NewContainer builds the dependency graph in order:
// config -> infrastructure (DB, cache) -> repositories -> services -> handlers.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(connectCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.Cache = newCache(ctx, cfg.Redis)

	// ========================================
	// STEP 3..5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Str("env", cfg.App.Environment).Msg("DI container initialized")
	return c, nil
}

// newCache falls back to the no-op cache when Redis is disabled or unreachable.
// A missing cache only costs latency.
func newCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if !cfg.Enabled {
		log.Info().Msg("[REDIS] Disabled, reads go straight to the store")
		return cache.NewNoop()
	}

	rc := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Connect(pingCtx); err != nil {
		log.Warn().Err(err).Msg("[REDIS] Connection failed (non-critical), caching disabled")
		_ = rc.Close()
		return cache.NewNoop()
	}
	return rc
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.SaleRepo = saleRepo.NewPostgresRepository(pool)
	c.RankingRepo = rankingRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.BookService = bookService.NewService(c.BookRepo, c.Cache, cfg.Redis.TTL, cfg.Query.Timeout)
	c.RankingService = rankingService.NewService(c.RankingRepo, c.Cache, cfg.Redis.TTL, cfg.Query.Timeout)
	c.IngestionService = ingestService.NewService(c.BookRepo, c.SaleRepo, c.Cache, ingestService.Options{
		Encoding:    cfg.Ingest.Encoding,
		OnDuplicate: cfg.Ingest.OnDuplicate,
	})
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.UploadHandler = ingestHandler.NewHandler(c.IngestionService, c.Config.Ingest.TempDir)
	c.RankingHandler = rankingHandler.NewHandler(c.RankingService)
}

// Cleanup releases the pool and the Redis client. Called on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
