package catalog

import (
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"slmarkets/internal/catalog/cache"
	"slmarkets/internal/catalog/repository"
)

// NewModule wires the catalog stack: MySQL repository, Redis cache and the
// HTTP controller on top of the cache-aside service.
func NewModule(db *sql.DB, redisClient *goredis.Client, cacheTTL time.Duration, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLCatalogRepository(db)
	redisCache := cache.NewRedisCache(redisClient, cacheTTL)
	service := NewService(repo, redisCache, logger)
	return NewController(service, logger)
}
