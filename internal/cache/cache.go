package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/catalog"
)

const (
	DefaultTTL    = 10 * time.Minute
	DefaultPrefix = "catalog:"
)

// Source met en cache dans Redis le contenu brut des fichiers du catalogue.
// Redis indisponible n'empêche jamais la lecture : on retombe sur la source.
type Source struct {
	client *redis.Client
	next   catalog.Source
	prefix string
	ttl    time.Duration
}

func NewSource(client *redis.Client, next catalog.Source, prefix string, ttl time.Duration) *Source {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Source{client: client, next: next, prefix: prefix, ttl: ttl}
}

func (s *Source) key(path string) string {
	return s.prefix + path
}

// Fetch lit d'abord le cache, puis la source, et met en cache ce qui a été lu.
func (s *Source) Fetch(ctx context.Context, path string) ([]byte, error) {
	// 1. Essayer le cache Redis
	data, err := s.client.Get(ctx, s.key(path)).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("⚠️ Cache catalogue indisponible (%s): %v", path, err)
	}

	// 2. Lire la source
	data, err = s.next.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	if err := s.client.Set(ctx, s.key(path), data, s.ttl).Err(); err != nil {
		log.Printf("⚠️ Mise en cache de %s impossible: %v", path, err)
	}
	return data, nil
}

// Invalidate supprime les entrées en cache pour les chemins donnés.
func (s *Source) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, s.key(p))
	}
	return s.client.Del(ctx, keys...).Err()
}
