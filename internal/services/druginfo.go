package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pharmakart/pharmacy-store-platform/internal/api/middleware"
	"github.com/pharmakart/pharmacy-store-platform/internal/cache"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/pharmakart/pharmacy-store-platform/pkg/openfda"
)

// DrugInfoService fronts the openFDA lookup with a cache. It never returns
// an error: any failure degrades to the fixed fallback text so the medicine
// detail view cannot break on a flaky collaborator.
type DrugInfoService interface {
	Lookup(ctx context.Context, medicineName string) *models.DrugInfo
}

type drugInfoService struct {
	client openfda.Client
	cache  cache.Cache
	ttl    time.Duration
}

func NewDrugInfoService(client openfda.Client, infoCache cache.Cache, ttl time.Duration) DrugInfoService {
	return &drugInfoService{client: client, cache: infoCache, ttl: ttl}
}

func (s *drugInfoService) Lookup(ctx context.Context, medicineName string) *models.DrugInfo {

	logger := middleware.LoggerFromContext(ctx)

	key := cache.Key(cache.DrugInfoKeyPrefix, medicineName)

	var cached models.DrugInfo

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Drug info cache lookup failed", slog.String("error", err.Error()))
	}

	if found {
		return &cached
	}

	info, err := s.client.Lookup(ctx, medicineName)
	if err != nil {
		logger.Warn("openFDA lookup failed, serving fallback text",
			slog.String("medicine", medicineName), slog.String("error", err.Error()))

		return openfda.FallbackInfo()
	}

	if err := s.cache.Set(ctx, key, info, s.ttl); err != nil {
		logger.Warn("Failed to cache drug info", slog.String("error", err.Error()))
	}

	return info
}
