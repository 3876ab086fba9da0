package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/util"
	"thinking_edu_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const catalogCacheKey = "catalog:problems"

// ProblemService 题库。内容只随部署变化，经Redis缓存，
// Redis不可用时退回进程内缓存。
type ProblemService struct {
	Storage *StorageService
	Redis   *redis.Client
	Config  config.CatalogConfig

	mu     sync.RWMutex
	memory []model.Problem
}

func NewProblemService(storage *StorageService, rdb *redis.Client, cfg config.CatalogConfig) *ProblemService {
	return &ProblemService{
		Storage: storage,
		Redis:   rdb,
		Config:  cfg,
	}
}

// Catalog 返回完整题库
func (s *ProblemService) Catalog(ctx context.Context) ([]model.Problem, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var problems []model.Problem
			if err := json.Unmarshal([]byte(val), &problems); err == nil {
				return problems, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	s.mu.RLock()
	if s.memory != nil {
		cached := s.memory
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	problems, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.memory = problems
	s.mu.Unlock()

	if s.Redis != nil {
		data, _ := json.Marshal(problems)
		ttl := time.Duration(s.Config.CacheTTLMinutes) * time.Minute
		if err := s.Redis.Set(ctx, catalogCacheKey, data, ttl).Err(); err != nil {
			logger.Log.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	return problems, nil
}

func (s *ProblemService) loadCatalog(ctx context.Context) ([]model.Problem, error) {
	reader, err := s.Storage.Get(ctx, s.Config.Object)
	if err != nil {
		return nil, fmt.Errorf("open problem catalog %s: %w", s.Config.Object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read problem catalog: %w", err)
	}

	var problems []model.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("decode problem catalog: %w", err)
	}

	for i := range problems {
		if err := problems[i].Validate(); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("problem catalog loaded", zap.Int("problems", len(problems)))
	return problems, nil
}

// ByCategory 按分类筛选，保持题库内顺序
func (s *ProblemService) ByCategory(ctx context.Context, category string) ([]model.Problem, error) {
	problems, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []model.Problem
	for _, p := range problems {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *ProblemService) ByID(ctx context.Context, id string) (*model.Problem, error) {
	problems, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	for i := range problems {
		if problems[i].ID == id {
			return &problems[i], nil
		}
	}
	return nil, util.ErrProblemNotFound
}

// CategoryView 分类一览的展示模型
type CategoryView struct {
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	ProblemCount int    `json:"problemCount"`
}

// Categories 固定目录顺序的分类一览，附题目数
func (s *ProblemService) Categories(ctx context.Context) ([]CategoryView, error) {
	problems, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range problems {
		counts[p.Category]++
	}

	views := make([]CategoryView, 0, len(model.CategoryCatalog))
	for _, c := range model.CategoryCatalog {
		views = append(views, CategoryView{
			Name:         c.Name,
			Icon:         c.Icon,
			ProblemCount: counts[c.Name],
		})
	}
	return views, nil
}
