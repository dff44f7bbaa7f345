package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gosh00/FitnessApp/internal/cache"
	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/nutrition"

	"github.com/redis/go-redis/v9"
)

// NutritionLookup is the upstream nutrition API.
type NutritionLookup interface {
	Lookup(ctx context.Context, query string) (json.RawMessage, error)
}

type NutritionService struct {
	client NutritionLookup
	rdb    *redis.Client
}

func NewNutritionService(client NutritionLookup, rdb *redis.Client) *NutritionService {
	return &NutritionService{client: client, rdb: rdb}
}

// Lookup passes query to the upstream API and returns its JSON array as is.
func (s *NutritionService) Lookup(ctx context.Context, query string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("query is required, e.g. 100g apple")
	}
	if s.client == nil {
		return nil, models.NewUpstreamError("error fetching food info", nutrition.ErrNotConfigured)
	}

	var body json.RawMessage
	err := cache.Aside(ctx, s.rdb, "nutrition", cache.NutritionKey(query), &body, cache.NutritionTTL, func() error {
		res, err := s.client.Lookup(ctx, query)
		if err != nil {
			return err
		}
		body = res
		return nil
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "nutrition lookup failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, models.NewUpstreamError("error fetching food info", err)
	}
	return body, nil
}
