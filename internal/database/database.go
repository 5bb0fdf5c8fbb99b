package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
)

// connectTimeout borne chaque tentative de connexion au démarrage.
const connectTimeout = 30 * time.Second

// =============================================
// REDIS
// =============================================

// ConnectRedis ouvre le client Redis et vérifie la connexion (PING), avec
// quelques essais pour laisser au conteneur le temps de démarrer.
func ConnectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	_, err := backoff.Retry(ctx, func() (string, error) {
		return client.Ping(ctx).Result()
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(5),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Printf("⚠️ Redis indisponible (%v), nouvel essai dans %s", err, next)
		}),
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connexion Redis %s: %w", cfg.RedisHost, err)
	}

	log.Println("✅ Connecté à Redis")
	return client, nil
}

// =============================================
// MINIO
// =============================================

// ConnectMinIO ouvre le client MinIO. Le bucket doit déjà exister : le
// catalogue y est seulement lu.
func ConnectMinIO(ctx context.Context, cfg config.Config) (*minio.Client, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT manquant")
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("client MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("vérification bucket MinIO: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket MinIO %q introuvable", cfg.MinIOBucket)
	}

	log.Println("✅ Connecté à MinIO :", cfg.MinIOEndpoint)
	return client, nil
}
