package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// Source fournit le contenu brut d'un fichier de données statiques.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// AssetsPrefix marque les chemins locaux : ils ne passent jamais par l'URL de l'API.
const AssetsPrefix = "/assets"

// FSSource lit les fichiers dans un fs.FS dont la racine correspond à /assets.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := assetName(path)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("chemin invalide: %s", path)
	}
	return fs.ReadFile(s.fsys, name)
}

// assetName transforme "/assets/data/produits.json" en "data/produits.json".
func assetName(path string) string {
	name := strings.TrimPrefix(path, AssetsPrefix)
	return strings.TrimPrefix(name, "/")
}
