package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gosh00/FitnessApp/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	PublicFeedKey      = "feed:public"
	ExerciseListPrefix = "exercises:"
	NutritionPrefix    = "nutrition:"
)

const (
	PublicFeedTTL   = 30 * time.Second
	ExerciseListTTL = 10 * time.Minute
	NutritionTTL    = 24 * time.Hour
)

// ExerciseListKey keys the catalog listing for a muscle filter ("" for all).
func ExerciseListKey(muscle string) string {
	m := strings.ToLower(strings.TrimSpace(muscle))
	if m == "" {
		m = "all"
	}
	return ExerciseListPrefix + m
}

// NutritionKey keys an upstream nutrition lookup by normalized query.
func NutritionKey(query string) string {
	return NutritionPrefix + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Invalidate deletes the given keys, logging failures.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}

// InvalidatePrefix deletes every key starting with prefix.
func InvalidatePrefix(ctx context.Context, rdb *redis.Client, prefix string) {
	if rdb == nil {
		return
	}
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache scan failed", slog.String("prefix", prefix), slog.String("error", err.Error()))
		return
	}
	Invalidate(ctx, rdb, keys...)
}

// InvalidatePublicFeed drops the cached anonymous feed.
func InvalidatePublicFeed(ctx context.Context, rdb *redis.Client) {
	Invalidate(ctx, rdb, PublicFeedKey)
}

// InvalidateExercises drops every cached catalog listing.
func InvalidateExercises(ctx context.Context, rdb *redis.Client) {
	InvalidatePrefix(ctx, rdb, ExerciseListPrefix)
}
