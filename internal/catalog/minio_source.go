package catalog

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
)

// MinioSource lit les fichiers de données dans un bucket MinIO / S3.
// "/assets/data/produits.json" devient l'objet "<prefix>/data/produits.json".
type MinioSource struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewMinioSource(client *minio.Client, bucket, prefix string) *MinioSource {
	return &MinioSource{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName retourne le nom de l'objet correspondant à un chemin d'asset.
func (s *MinioSource) ObjectName(assetPath string) string {
	name := assetName(assetPath)
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *MinioSource) Fetch(ctx context.Context, assetPath string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("MinIO non initialisé")
	}

	name := s.ObjectName(assetPath)
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("lecture de %s/%s: %w", s.bucket, name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("objet %s/%s introuvable", s.bucket, name)
		}
		return nil, fmt.Errorf("lecture de %s/%s: %w", s.bucket, name, err)
	}
	return data, nil
}
