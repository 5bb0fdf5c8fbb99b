package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"storefront/internal/catalog"
)

// DefaultImageURLTTL est la durée de validité des URL signées.
const DefaultImageURLTTL = time.Hour

// ImageURLs donne l'adresse à afficher pour le champ image d'un produit.
type ImageURLs interface {
	URL(ctx context.Context, image string) (string, error)
}

// StaticImages renvoie le chemin tel quel : les images sont servies sous /assets.
type StaticImages struct{}

func (StaticImages) URL(_ context.Context, image string) (string, error) {
	return image, nil
}

// MinioImages signe les images stockées dans le bucket du catalogue, avec la
// même correspondance chemin → objet que catalog.MinioSource.
type MinioImages struct {
	client *minio.Client
	bucket string
	names  *catalog.MinioSource
	ttl    time.Duration
}

func NewMinioImages(client *minio.Client, bucket, prefix string, ttl time.Duration) *MinioImages {
	if ttl <= 0 {
		ttl = DefaultImageURLTTL
	}
	return &MinioImages{
		client: client,
		bucket: bucket,
		names:  catalog.NewMinioSource(client, bucket, prefix),
		ttl:    ttl,
	}
}

// URL génère une URL signée ; les URL absolues sont laissées telles quelles.
func (m *MinioImages) URL(ctx context.Context, image string) (string, error) {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image, nil
	}
	if m.client == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	presigned, err := m.client.PresignedGetObject(ctx, m.bucket, m.names.ObjectName(image), m.ttl, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("signature de %s: %w", image, err)
	}
	return presigned.String(), nil
}
