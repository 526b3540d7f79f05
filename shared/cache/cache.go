package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"listo/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	generationSuffix      = ":generation"
	Nil                   = redis.Nil
)

// ErrStale is returned by SaveAt when key was invalidated after its generation was read.
var ErrStale = errors.New("cache value is stale")

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)

	// Generation reads how many times key has been invalidated.
	Generation(ctx context.Context, key string) (int64, error)
	// SaveAt stores value only if key is still at generation.
	SaveAt(ctx context.Context, key string, value any, duration int, generation int64) error
	// Invalidate deletes key and moves its generation on, so a reader that loaded
	// before the invalidation cannot write its snapshot back.
	Invalidate(ctx context.Context, key string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

// NewRedisCache returns a Redis backed cache, or a no-op cache when client is nil.
func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	if client == nil {
		return noopCache{}
	}

	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Invalidate implements RedisCache.
func (cache *redisCache) Invalidate(ctx context.Context, key string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Invalidate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	_, err = cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key+generationSuffix)
		pipe.Del(ctx, key)

		return nil
	})
	if err != nil {
		log.Error().Str("key", key).Err(err).Str("RedisCache", "Invalidate").Msg("failed to invalidate cache")

		return fmt.Errorf("failed to invalidate cache value: %w", err)
	}

	return nil
}

// Generation implements RedisCache.
func (cache *redisCache) Generation(ctx context.Context, key string) (generation int64, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Generation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	generation, err = readGeneration(ctx, cache.client, key)
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}

	return generation, nil
}

// SaveAt implements RedisCache. The generation key is watched so an Invalidate racing
// with the write aborts it.
func (cache *redisCache) SaveAt(ctx context.Context, key string, value any, duration int, generation int64) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".SaveAt")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)
	scope.SetAttribute("cache.generation", generation)

	data, err := encode(value)
	if err != nil {
		return err
	}

	err = cache.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, key)
		if err != nil {
			return err
		}

		if current != generation {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, time.Second*time.Duration(duration))

			return nil
		})

		return err //nolint:wrapcheck
	}, key+generationSuffix)

	switch {
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	case err != nil:
		log.Error().Err(err).Str("key", key).Str("RedisCache", "SaveAt").Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, client getter, key string) (int64, error) {
	generation, err := client.Get(ctx, key+generationSuffix).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return generation, err //nolint:wrapcheck
}

// Get implements RedisCache.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	cacheValue, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	switch v := value.(type) {
	case *string:
		*v = cacheValue
	default:
		err = json.Unmarshal([]byte(cacheValue), value)
		if err != nil {
			log.Error().Err(err).Str("RedisCache", "Get").Msg("failed to unmarshal cache")

			return fmt.Errorf("failed to unmarshal cache value: %w", err)
		}
	}

	return nil
}

// Save implements RedisCache.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	strValue, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Save").Msg("failed to marshal cache")

		return err
	}

	err = cache.client.Set(ctx, key, strValue, time.Second*time.Duration(duration)).Err()

	if err != nil {
		scope.TraceError(err)

		log.Error().Err(err).Str("key", key).Str("RedisCache", "Save").Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("RedisCache", "Save").Str("key", key).Msg("success to set cache")

	return nil
}

func encode(value any) ([]byte, error) {
	if v, ok := value.(string); ok {
		return []byte(v), nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return data, nil
}

// noopCache always misses. It stands in for Redis when caching is disabled.
type noopCache struct{}

func (noopCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }

func (noopCache) Get(_ context.Context, _ string, _ any) error { return Nil }

func (noopCache) Generation(_ context.Context, _ string) (int64, error) { return 0, nil }

func (noopCache) SaveAt(_ context.Context, _ string, _ any, _ int, _ int64) error { return nil }

func (noopCache) Invalidate(_ context.Context, _ string) error { return nil }
