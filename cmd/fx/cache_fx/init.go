package cache_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/pkg/logger"
	mem "tripplanner/pkg/memcache"
)

var Module = fx.Provide(provideDraftCache)

func provideDraftCache(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (mem.DraftCache, error) {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled, keeping drafts in memory")
		return mem.NewMemoryDrafts(), nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	client, err := mem.NewRedisClient(context.Background(), addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	log.WithField("addr", addr).Info("Connected to Redis")
	return mem.NewRedisDrafts(client, cfg.Redis.Prefix), nil
}
