package database

import (
	"context"
	"fmt"
	"time"

	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// InitRedis 建立连接并校验可达性，题库目录缓存依赖它
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Log.Info("Redis connection established")
	return rdb, nil
}
